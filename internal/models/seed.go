package models

import (
	"fmt"
	"time"
)

// Seed loads the demo fixture data: the Valley Vet build with its users,
// phases, content-phase tasks, design pages under review, a chat log, and a
// few notifications. No-op when users already exist.
func Seed(db *DB) error {
	n, err := Count[User](db.DB)
	if err != nil {
		return fmt.Errorf("seed precheck: %w", err)
	}
	if n > 0 {
		return nil
	}

	return db.Transaction(func(tx *DB) error {
		for _, fn := range []func(*DB) error{
			seedUsers, seedPhases, seedProjects, seedTasks,
			seedPages, seedChat, seedNotifications,
		} {
			if err := fn(tx); err != nil {
				return err
			}
		}
		return nil
	})
}

func ts(value string) time.Time {
	t, _ := time.Parse(time.RFC3339, value)
	return t
}

func seedUsers(db *DB) error {
	users := []User{
		{ID: "1", Name: "Dr. Smith", Email: "dr.smith@vetclinic.com", Role: RoleClientOwner},
		{ID: "2", Name: "Jane Cooper", Email: "jane@designengine.com", Role: RolePM},
		{ID: "3", Name: "Admin User", Email: "admin@designengine.com", Role: RoleSuperAdmin},
		{ID: "4", Name: "Alex Reed", Email: "alex@vetclinic.com", Role: RoleClientCollaborator},
		{ID: "5", Name: "Morgan Diaz", Email: "morgan@designengine.com", Role: RoleAdmin},
	}
	return BulkCreate(db.DB, users)
}

func seedPhases(db *DB) error {
	phases := []Phase{
		{Slug: PhaseDiscovery, Title: "Discovery", SortOrder: 0, IsComplete: true},
		{Slug: PhaseContent, Title: "Content", SortOrder: 1},
		{Slug: PhaseDesign, Title: "Design", SortOrder: 2},
		{Slug: PhaseLaunch, Title: "Launch", SortOrder: 3},
	}
	return BulkCreate(db.DB, phases)
}

func seedProjects(db *DB) error {
	return db.Projects.Create(&Project{
		ID:         "valley-vet",
		Name:       "Valley Vet Clinic Website",
		TemplateID: "vet-standard",
		PhaseSlug:  PhaseDiscovery,
		CreatedAt:  ts("2025-05-15T09:00:00Z"),
	})
}

func seedTasks(db *DB) error {
	siteMap := JSONB{
		"home":     map[string]interface{}{"title": "Home", "description": "Main landing page with hero section, services overview, and testimonials"},
		"about":    map[string]interface{}{"title": "About Us", "description": "Practice history, mission, values, and facility tour"},
		"services": map[string]interface{}{"title": "Services", "description": "Comprehensive list of veterinary services"},
		"team":     map[string]interface{}{"title": "Our Team", "description": "Staff profiles and credentials"},
		"contact":  map[string]interface{}{"title": "Contact", "description": "Location, hours, and contact form"},
	}

	tasks := []Task{
		{
			ID: "staff_bios", Title: "Staff Biographies & Headshots",
			PhaseSlug: PhaseContent, Status: TaskActive, Kind: KindGeneric,
			DueDate:     ts("2025-06-01T00:00:00Z"),
			Description: "Submit biographies and professional headshots for all veterinarians and key staff members.",
			TipsRef:     "ai_bio_tips", SortOrder: 0,
		},
		{
			ID: "service_copy", Title: "Service Page Copy",
			PhaseSlug: PhaseContent, Status: TaskActive, Kind: KindGeneric,
			DueDate:     ts("2025-06-01T00:00:00Z"),
			Description: "Create descriptive content for each service your clinic offers.",
			TipsRef:     "ai_copy_tips", SortOrder: 1,
		},
		{
			ID: "domain_creds", Title: "Domain Registrar Access",
			PhaseSlug: PhaseContent, Status: TaskPending, Kind: KindGeneric,
			DueDate:     ts("2025-06-15T00:00:00Z"),
			Description: "Provide access credentials for your domain registrar to enable DNS updates.",
			Required:    true, SortOrder: 2,
		},
		{
			ID: "email_migration", Title: "Email Migration Preferences",
			PhaseSlug: PhaseContent, Status: TaskPending, Kind: KindGeneric,
			DueDate:     ts("2025-06-15T00:00:00Z"),
			Description: "Confirm your email migration preferences and list the accounts to migrate.",
			Required:    true, SortOrder: 3,
		},
		{
			ID: "sitemap_confirmation", Title: "Confirmed Site Map",
			PhaseSlug: PhaseContent, Status: TaskActive, Kind: KindSiteMapReview,
			DueDate:     ts("2025-06-08T00:00:00Z"),
			Description: "Review and approve the proposed site map for your new website.",
			SiteMap:     siteMap, SortOrder: 4,
		},
		{
			ID: "design_review", Title: "Design Review",
			PhaseSlug: PhaseDesign, Status: TaskActive, Kind: KindDesignReview,
			DueDate:     ts("2025-06-22T00:00:00Z"),
			Description: "Review and approve the design for your new website.",
			SortOrder:   5,
		},
	}
	return BulkCreate(db.DB, tasks)
}

func seedPages(db *DB) error {
	pages := []PageReview{
		{
			ID: "home", ProjectID: "valley-vet", TaskID: "design_review",
			Title: "Homepage", Slug: "/home",
			StagingURL: "https://staging.valleyvet.example.com",
			Status:     ReviewPending, Version: "v1.0",
			FeedbackDue: ts("2025-06-22T23:59:59Z"),
		},
		{
			ID: "services", ProjectID: "valley-vet", TaskID: "design_review",
			Title: "Services", Slug: "/services",
			StagingURL: "https://staging.valleyvet.example.com/services",
			Status:     ReviewChangesRequested, Version: "v1.1",
			FeedbackDue: ts("2025-06-22T23:59:59Z"),
		},
		{
			ID: "about", ProjectID: "valley-vet", TaskID: "design_review",
			Title: "About Us", Slug: "/about",
			StagingURL: "https://staging.valleyvet.example.com/about",
			Status:     ReviewApproved, Version: "v1.0",
			FeedbackDue: ts("2025-06-22T23:59:59Z"),
		},
		{
			ID: "contact", ProjectID: "valley-vet", TaskID: "design_review",
			Title: "Contact", Slug: "/contact",
			StagingURL: "https://staging.valleyvet.example.com/contact",
			Status:     ReviewPending, Version: "v1.0",
			FeedbackDue: ts("2025-06-22T23:59:59Z"),
		},
	}
	if err := BulkCreate(db.DB, pages); err != nil {
		return err
	}

	comments := []Comment{
		{
			ID: "c1", PageID: "services", ProjectID: "valley-vet",
			UserID: "1", UserName: "Dr. Smith",
			Message:   "Can we make the service cards larger on desktop?",
			Timestamp: ts("2025-06-16T14:30:00Z"),
			Status:    CommentOpen, UnreadForPM: true,
		},
		{
			ID: "c2", PageID: "contact", ProjectID: "valley-vet",
			UserID: "1", UserName: "Dr. Smith",
			Message:   "The contact form needs more fields for pet information",
			Timestamp: ts("2025-06-17T09:15:00Z"),
			Status:    CommentOpen, UnreadForPM: true,
		},
	}
	return BulkCreate(db.DB, comments)
}

func seedChat(db *DB) error {
	messages := []ChatMessage{
		{
			ID: "m1", TaskID: "staff_bios", UserID: "2", UserName: "Jane Cooper",
			Message:   "Hi Dr. Smith! I'm here to help with your staff biographies. Let me know if you have any questions.",
			Timestamp: ts("2025-05-17T10:30:00Z"),
		},
		{
			ID: "m2", TaskID: "staff_bios", UserID: "1", UserName: "Dr. Smith",
			Message:   "Thanks! How long should each bio be? And should I include personal interests?",
			Timestamp: ts("2025-05-17T11:45:00Z"),
		},
		{
			ID: "m3", TaskID: "staff_bios", UserID: "2", UserName: "Jane Cooper",
			Message:   "Aim for 150-200 words per bio. Personal interests are encouraged, they help clients connect with your team.",
			Timestamp: ts("2025-05-17T12:10:00Z"),
		},
	}
	return BulkCreate(db.DB, messages)
}

func seedNotifications(db *DB) error {
	notifications := []Notification{
		{
			ID: "n1", UserID: "1", Type: NoticeInfo,
			Message:   "Welcome to your veterinary website project! Let's get started.",
			Timestamp: ts("2025-05-15T10:00:00Z"),
		},
		{
			ID: "n2", UserID: "1", Type: NoticeSuccess,
			Message:   "Discovery phase completed successfully! Moving to Content phase.",
			Timestamp: ts("2025-05-16T14:30:00Z"), Read: true,
		},
		{
			ID: "n3", UserID: "1", Type: NoticeWarning,
			Message:   "Staff Biographies task is due in 5 days.",
			Timestamp: ts("2025-05-27T09:15:00Z"),
		},
	}
	return BulkCreate(db.DB, notifications)
}
