package memory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/abhishek-kr07/quickdesk/internal/models"
)

// Seed loads the demo fixtures: an admin, an agent, two end users, five
// categories and a handful of tickets with a comment thread. Used by
// STORE=memory mode so the service is usable without a database.
func (s *Store) Seed() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := func(d string) time.Time {
		t, _ := time.Parse("2006-01-02", d)
		return t
	}
	at := func(d string) time.Time {
		t, _ := time.Parse("2006-01-02T15:04:05", d)
		return t
	}

	s.users = []models.User{
		{ID: "1", Name: "Admin User", Email: "admin@quickdesk.com", Password: hash("admin@2024"), Role: "admin", CreatedAt: day("2024-01-01"), UpdatedAt: day("2024-01-01"), Avatar: "https://via.placeholder.com/40/1976d2/ffffff?text=A"},
		{ID: "2", Name: "Support Agent", Email: "agent@quickdesk.com", Password: hash("agent123"), Role: "agent", CreatedAt: day("2024-01-02"), UpdatedAt: day("2024-01-02"), Avatar: "https://via.placeholder.com/40/2e7d32/ffffff?text=S"},
		{ID: "3", Name: "John Doe", Email: "john@example.com", Password: hash("user123"), Role: "user", CreatedAt: day("2024-01-03"), UpdatedAt: day("2024-01-03"), Avatar: "https://via.placeholder.com/40/ed6c02/ffffff?text=J"},
		{ID: "4", Name: "Jane Smith", Email: "jane@example.com", Password: hash("user123"), Role: "user", CreatedAt: day("2024-01-04"), UpdatedAt: day("2024-01-04"), Avatar: "https://via.placeholder.com/40/9c27b0/ffffff?text=J"},
	}

	s.categories = []models.Category{
		{ID: "1", Name: "Technical Support", Description: "Hardware and software issues", Color: "#1976d2", CreatedAt: day("2024-01-01")},
		{ID: "2", Name: "Account Issues", Description: "Login, password, and account-related problems", Color: "#2e7d32", CreatedAt: day("2024-01-01")},
		{ID: "3", Name: "Billing", Description: "Payment and subscription issues", Color: "#ed6c02", CreatedAt: day("2024-01-01")},
		{ID: "4", Name: "Feature Request", Description: "Suggestions for new features", Color: "#9c27b0", CreatedAt: day("2024-01-01")},
		{ID: "5", Name: "General Inquiry", Description: "General questions and information", Color: "#d32f2f", CreatedAt: day("2024-01-01")},
	}

	s.tickets = []models.Ticket{
		{ID: "1", Subject: "Cannot login to my account", Description: `I'm getting an error message when trying to log in. It says "Invalid credentials" but I'm sure my password is correct.`, CategoryID: "2", UserID: "3", AssignedTo: "2", Status: "in_progress", Priority: "high", Attachments: []string{}, CreatedAt: at("2024-01-15T10:30:00"), UpdatedAt: at("2024-01-16T14:20:00")},
		{ID: "2", Subject: "Software crashes on startup", Description: "The application crashes immediately when I try to open it. This started happening after the latest update.", CategoryID: "1", UserID: "4", Status: "open", Priority: "medium", Attachments: []string{"error_log.txt"}, CreatedAt: at("2024-01-14T16:45:00"), UpdatedAt: at("2024-01-14T16:45:00")},
		{ID: "3", Subject: "Billing question about subscription", Description: "I was charged twice this month for my subscription. Can you help me understand why?", CategoryID: "3", UserID: "3", AssignedTo: "2", Status: "resolved", Priority: "low", Attachments: []string{}, CreatedAt: at("2024-01-10T09:15:00"), UpdatedAt: at("2024-01-12T11:30:00")},
		{ID: "4", Subject: "Feature request: Dark mode", Description: "It would be great to have a dark mode option for the application. Many users prefer it for better eye comfort.", CategoryID: "4", UserID: "4", Status: "open", Priority: "low", Attachments: []string{}, CreatedAt: at("2024-01-13T13:20:00"), UpdatedAt: at("2024-01-13T13:20:00")},
	}

	s.comments = []models.Comment{
		{ID: "1", TicketID: "1", UserID: "2", Content: "I can see the issue. Let me check your account settings.", CreatedAt: at("2024-01-15T11:00:00")},
		{ID: "2", TicketID: "1", UserID: "3", Content: "Thank you for looking into this. I've been locked out for hours.", CreatedAt: at("2024-01-15T11:30:00")},
		{ID: "3", TicketID: "1", UserID: "2", Content: "I've reset your password. You should receive an email with the new temporary password. Please change it after logging in.", CreatedAt: at("2024-01-16T14:20:00")},
		{ID: "4", TicketID: "3", UserID: "2", Content: "I found the duplicate charge. It was a system error. I've issued a refund that should appear in your account within 3-5 business days.", CreatedAt: at("2024-01-12T11:30:00")},
		{ID: "5", TicketID: "3", UserID: "3", Content: "Perfect! Thank you for the quick resolution.", CreatedAt: at("2024-01-12T12:00:00")},
	}

	return s
}

func hash(pw string) string {
	b, _ := bcrypt.GenerateFromPassword([]byte(pw), 10)
	return string(b)
}
