package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"skillbridge/internal/auth"
	"skillbridge/internal/authz"
	"skillbridge/internal/database"
	"skillbridge/internal/models"
	"skillbridge/internal/repository"
)

type testEnv struct {
	db          *database.DB
	accounts    *AccountService
	guardians   *GuardianService
	offerings   *OfferingService
	engagements *EngagementService
	videos      *VideoService
	enrollments *EnrollmentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "service_test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	accountRepo := repository.NewAccountRepository(db)
	guardianRepo := repository.NewGuardianRepository(db)
	dependentRepo := repository.NewDependentRepository(db)
	offeringRepo := repository.NewOfferingRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	emailService, err := NewEmailService("", "", "")
	if err != nil {
		t.Fatalf("Failed to create email service: %v", err)
	}

	return &testEnv{
		db:          db,
		accounts:    NewAccountService(accountRepo, nil, emailService),
		guardians:   NewGuardianService(guardianRepo, dependentRepo),
		offerings:   NewOfferingService(offeringRepo),
		engagements: NewEngagementService(engagementRepo, offeringRepo),
		videos:      NewVideoService(videoRepo, offeringRepo),
		enrollments: NewEnrollmentService(enrollmentRepo, engagementRepo, dependentRepo, guardianRepo, emailService),
	}
}

func (env *testEnv) registerAccount(t *testing.T, subjectID string, role models.Role) models.Account {
	t.Helper()
	account, err := env.accounts.ResolveOrRegister(context.Background(), auth.Identity{
		SubjectID: subjectID,
		Email:     subjectID + "@example.com",
	}, role)
	if err != nil {
		t.Fatalf("Failed to register %s account: %v", role, err)
	}
	return *account
}

func (env *testEnv) approvedVolunteer(t *testing.T, subjectID string) models.Account {
	t.Helper()
	admin := env.registerAccount(t, subjectID+"_admin", models.RoleAdmin)
	volunteer := env.registerAccount(t, subjectID, models.RoleVolunteer)
	approved, err := env.accounts.Approve(context.Background(), admin, volunteer.ID)
	if err != nil {
		t.Fatalf("Failed to approve volunteer: %v", err)
	}
	return *approved
}

func (env *testEnv) guardianWithDependent(t *testing.T, subjectID string) (models.Account, *models.Dependent) {
	t.Helper()
	account := env.registerAccount(t, subjectID, models.RoleGuardian)
	if _, err := env.guardians.RegisterGuardian(account, subjectID+"@example.com"); err != nil {
		t.Fatalf("Failed to register guardian: %v", err)
	}
	dependent, err := env.guardians.CreateDependent(account, "Dependent Kid", 10, "chess")
	if err != nil {
		t.Fatalf("Failed to create dependent: %v", err)
	}
	return account, dependent
}

func TestAccountRegistration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	env := newTestEnv(t)

	t.Run("volunteer starts unapproved", func(t *testing.T) {
		account := env.registerAccount(t, "vol_1", models.RoleVolunteer)
		if account.Approved {
			t.Error("new volunteer should not be approved")
		}
	})

	t.Run("guardian is approved immediately", func(t *testing.T) {
		account := env.registerAccount(t, "guard_1", models.RoleGuardian)
		if !account.Approved {
			t.Error("new guardian should be approved")
		}
	})

	t.Run("admin is approved immediately", func(t *testing.T) {
		account := env.registerAccount(t, "admin_1", models.RoleAdmin)
		if !account.Approved {
			t.Error("new admin should be approved")
		}
	})

	t.Run("same role registration is a no-op", func(t *testing.T) {
		first := env.registerAccount(t, "guard_2", models.RoleGuardian)
		second := env.registerAccount(t, "guard_2", models.RoleGuardian)
		if first.ID != second.ID {
			t.Errorf("re-registration created a new account: %d != %d", first.ID, second.ID)
		}

		volunteer := env.approvedVolunteer(t, "vol_2")
		again := env.registerAccount(t, "vol_2", models.RoleVolunteer)
		if again.ID != volunteer.ID {
			t.Fatalf("re-registration created a new account: %d != %d", volunteer.ID, again.ID)
		}
		if !again.Approved {
			t.Error("re-registering an approved volunteer should not reset approval")
		}
	})

	t.Run("role switch recomputes approval", func(t *testing.T) {
		account := env.registerAccount(t, "switcher", models.RoleGuardian)
		if !account.Approved {
			t.Fatal("guardian should start approved")
		}

		switched := env.registerAccount(t, "switcher", models.RoleVolunteer)
		if switched.ID != account.ID {
			t.Fatalf("role switch created a new account")
		}
		if switched.Role != models.RoleVolunteer {
			t.Errorf("role = %s, want VOLUNTEER", switched.Role)
		}
		if switched.Approved {
			t.Error("switching to volunteer should clear approval")
		}

		back := env.registerAccount(t, "switcher", models.RoleGuardian)
		if !back.Approved {
			t.Error("switching back to guardian should restore approval")
		}
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		_, err := env.accounts.ResolveOrRegister(context.Background(), auth.Identity{SubjectID: "bad"}, models.Role("WIZARD"))
		if err == nil {
			t.Error("expected error for invalid role")
		}
	})
}

func TestVolunteerApproval(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	env := newTestEnv(t)
	ctx := context.Background()

	admin := env.registerAccount(t, "admin_a", models.RoleAdmin)
	volunteer := env.registerAccount(t, "vol_a", models.RoleVolunteer)

	pending, err := env.accounts.ListPendingVolunteers(admin)
	if err != nil {
		t.Fatalf("ListPendingVolunteers() error = %v", err)
	}
	if len(pending) != 1 || pending[0].ID != volunteer.ID {
		t.Fatalf("pending list = %v, want the one unapproved volunteer", pending)
	}

	t.Run("non-admin cannot approve", func(t *testing.T) {
		guardian := env.registerAccount(t, "guard_a", models.RoleGuardian)
		_, err := env.accounts.Approve(ctx, guardian, volunteer.ID)
		if !errors.Is(err, authz.ErrRoleNotPermitted) {
			t.Errorf("error = %v, want ErrRoleNotPermitted", err)
		}
	})

	t.Run("admin approves", func(t *testing.T) {
		approved, err := env.accounts.Approve(ctx, admin, volunteer.ID)
		if err != nil {
			t.Fatalf("Approve() error = %v", err)
		}
		if !approved.Approved {
			t.Error("account should be approved")
		}
	})

	t.Run("approval is idempotent", func(t *testing.T) {
		approved, err := env.accounts.Approve(ctx, admin, volunteer.ID)
		if err != nil {
			t.Fatalf("second Approve() error = %v", err)
		}
		if !approved.Approved {
			t.Error("account should remain approved")
		}
	})

	t.Run("approved volunteer leaves pending list", func(t *testing.T) {
		pending, err := env.accounts.ListPendingVolunteers(admin)
		if err != nil {
			t.Fatalf("ListPendingVolunteers() error = %v", err)
		}
		if len(pending) != 0 {
			t.Errorf("pending list has %d entries, want 0", len(pending))
		}
	})

	t.Run("missing account", func(t *testing.T) {
		_, err := env.accounts.Approve(ctx, admin, 99999)
		if !errors.Is(err, ErrAccountNotFound) {
			t.Errorf("error = %v, want ErrAccountNotFound", err)
		}
	})
}

func TestPendingVolunteerLockout(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	env := newTestEnv(t)

	volunteer := env.registerAccount(t, "vol_locked", models.RoleVolunteer)

	_, err := env.offerings.CreateOffering(volunteer, "Intro to Robotics", "")
	if !errors.Is(err, authz.ErrPendingApproval) {
		t.Errorf("CreateOffering error = %v, want ErrPendingApproval", err)
	}

	_, err = env.offerings.ListOfferings(volunteer, 0, 10)
	if !errors.Is(err, authz.ErrPendingApproval) {
		t.Errorf("ListOfferings error = %v, want ErrPendingApproval", err)
	}
}

func TestGuardianRegistration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	env := newTestEnv(t)

	account := env.registerAccount(t, "guard_r", models.RoleGuardian)

	guardian, err := env.guardians.RegisterGuardian(account, "guard_r@example.com")
	if err != nil {
		t.Fatalf("RegisterGuardian() error = %v", err)
	}
	if guardian.AccountID != account.ID {
		t.Errorf("AccountID = %d, want %d", guardian.AccountID, account.ID)
	}

	t.Run("second profile for same account rejected", func(t *testing.T) {
		_, err := env.guardians.RegisterGuardian(account, "other@example.com")
		if !errors.Is(err, ErrGuardianExists) {
			t.Errorf("error = %v, want ErrGuardianExists", err)
		}
	})

	t.Run("email taken by another guardian", func(t *testing.T) {
		other := env.registerAccount(t, "guard_r2", models.RoleGuardian)
		_, err := env.guardians.RegisterGuardian(other, "guard_r@example.com")
		if !errors.Is(err, ErrEmailTaken) {
			t.Errorf("error = %v, want ErrEmailTaken", err)
		}
	})

	t.Run("volunteer cannot register a profile", func(t *testing.T) {
		volunteer := env.approvedVolunteer(t, "vol_g")
		_, err := env.guardians.RegisterGuardian(volunteer, "vol_g@example.com")
		if !errors.Is(err, authz.ErrRoleNotPermitted) {
			t.Errorf("error = %v, want ErrRoleNotPermitted", err)
		}
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		another := env.registerAccount(t, "guard_r3", models.RoleGuardian)
		_, err := env.guardians.RegisterGuardian(another, "not-an-email")
		if err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestDependentManagement(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	env := newTestEnv(t)

	owner, dependent := env.guardianWithDependent(t, "guard_d")

	t.Run("age bounds enforced", func(t *testing.T) {
		if _, err := env.guardians.CreateDependent(owner, "Too Young", models.MinDependentAge-1, ""); err == nil {
			t.Error("expected error below minimum age")
		}
		if _, err := env.guardians.CreateDependent(owner, "Too Old", models.MaxDependentAge+1, ""); err == nil {
			t.Error("expected error above maximum age")
		}
	})

	t.Run("owner reads dependent", func(t *testing.T) {
		got, err := env.guardians.GetDependent(owner, dependent.ID)
		if err != nil {
			t.Fatalf("GetDependent() error = %v", err)
		}
		if got.Name != "Dependent Kid" {
			t.Errorf("Name = %q, want Dependent Kid", got.Name)
		}
	})

	t.Run("foreign dependent reads as not found", func(t *testing.T) {
		stranger, _ := env.guardianWithDependent(t, "guard_d2")
		_, err := env.guardians.GetDependent(stranger, dependent.ID)
		if !errors.Is(err, ErrDependentNotFound) {
			t.Errorf("error = %v, want ErrDependentNotFound", err)
		}
	})

	t.Run("owner updates dependent", func(t *testing.T) {
		updated, err := env.guardians.UpdateDependent(owner, dependent.ID, "Renamed Kid", 11, "chess, art")
		if err != nil {
			t.Fatalf("UpdateDependent() error = %v", err)
		}
		if updated.Name != "Renamed Kid" || updated.Age != 11 {
			t.Errorf("updated = %+v, want renamed with age 11", updated)
		}
	})

	t.Run("foreign update is forbidden", func(t *testing.T) {
		stranger, _ := env.guardianWithDependent(t, "guard_d3")
		_, err := env.guardians.UpdateDependent(stranger, dependent.ID, "Hijacked", 12, "")
		if !errors.Is(err, authz.ErrNotOwner) {
			t.Errorf("error = %v, want ErrNotOwner", err)
		}
	})

	t.Run("update of missing dependent is not found", func(t *testing.T) {
		_, err := env.guardians.UpdateDependent(owner, 99999, "Ghost", 12, "")
		if !errors.Is(err, ErrDependentNotFound) {
			t.Errorf("error = %v, want ErrDependentNotFound", err)
		}
	})

	t.Run("account without profile", func(t *testing.T) {
		bare := env.registerAccount(t, "guard_bare", models.RoleGuardian)
		_, err := env.guardians.ListDependents(bare)
		if !errors.Is(err, ErrGuardianNotFound) {
			t.Errorf("error = %v, want ErrGuardianNotFound", err)
		}
	})
}

func TestOfferingsHaveNoOwnershipGate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	env := newTestEnv(t)

	creator := env.approvedVolunteer(t, "vol_o1")
	editor := env.approvedVolunteer(t, "vol_o2")

	offering, err := env.offerings.CreateOffering(creator, "Creative Writing", "short stories")
	if err != nil {
		t.Fatalf("CreateOffering() error = %v", err)
	}

	// Any catalog manager may edit a shared offering.
	updated, err := env.offerings.UpdateOffering(editor, offering.ID, "Creative Writing II", "novellas")
	if err != nil {
		t.Fatalf("UpdateOffering() by non-creator error = %v", err)
	}
	if updated.Name != "Creative Writing II" {
		t.Errorf("Name = %q, want Creative Writing II", updated.Name)
	}

	if err := env.offerings.DeleteOffering(editor, offering.ID); err != nil {
		t.Fatalf("DeleteOffering() by non-creator error = %v", err)
	}

	_, err = env.offerings.GetOffering(creator, offering.ID)
	if !errors.Is(err, ErrOfferingNotFound) {
		t.Errorf("error after delete = %v, want ErrOfferingNotFound", err)
	}

	t.Run("guardian cannot create", func(t *testing.T) {
		guardian := env.registerAccount(t, "guard_o", models.RoleGuardian)
		_, err := env.offerings.CreateOffering(guardian, "Nope", "")
		if !errors.Is(err, authz.ErrRoleNotPermitted) {
			t.Errorf("error = %v, want ErrRoleNotPermitted", err)
		}
	})
}

func TestEngagementOwnership(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	env := newTestEnv(t)

	presenter := env.approvedVolunteer(t, "vol_e1")
	offering, err := env.offerings.CreateOffering(presenter, "Chess Basics", "")
	if err != nil {
		t.Fatalf("CreateOffering() error = %v", err)
	}

	schedule := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	engagement, err := env.engagements.CreateEngagement(presenter, offering.ID, "Opening Theory", "", schedule, "https://meet.example.com/abc")
	if err != nil {
		t.Fatalf("CreateEngagement() error = %v", err)
	}
	if engagement.Status != models.StatusScheduled {
		t.Errorf("new engagement status = %s, want scheduled", engagement.Status)
	}

	newTitle := "Opening Theory II"

	t.Run("other volunteer cannot update", func(t *testing.T) {
		other := env.approvedVolunteer(t, "vol_e2")
		_, err := env.engagements.UpdateEngagement(other, engagement.ID, EngagementUpdate{Title: &newTitle})
		if !errors.Is(err, authz.ErrNotOwner) {
			t.Errorf("error = %v, want ErrNotOwner", err)
		}
	})

	t.Run("admin gets no ownership bypass", func(t *testing.T) {
		admin := env.registerAccount(t, "admin_e", models.RoleAdmin)
		_, err := env.engagements.UpdateEngagement(admin, engagement.ID, EngagementUpdate{Title: &newTitle})
		if !errors.Is(err, authz.ErrNotOwner) {
			t.Errorf("error = %v, want ErrNotOwner", err)
		}
		if err := env.engagements.DeleteEngagement(admin, engagement.ID); !errors.Is(err, authz.ErrNotOwner) {
			t.Errorf("delete error = %v, want ErrNotOwner", err)
		}
	})

	t.Run("presenter updates", func(t *testing.T) {
		updated, err := env.engagements.UpdateEngagement(presenter, engagement.ID, EngagementUpdate{Title: &newTitle})
		if err != nil {
			t.Fatalf("UpdateEngagement() error = %v", err)
		}
		if updated.Title != newTitle {
			t.Errorf("Title = %q, want %q", updated.Title, newTitle)
		}
	})
}

func TestEngagementStatusMachine(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	env := newTestEnv(t)

	presenter := env.approvedVolunteer(t, "vol_s1")
	offering, err := env.offerings.CreateOffering(presenter, "Guitar", "")
	if err != nil {
		t.Fatalf("CreateOffering() error = %v", err)
	}
	engagement, err := env.engagements.CreateEngagement(presenter, offering.ID, "First Chords", "", time.Now().Add(time.Hour), "")
	if err != nil {
		t.Fatalf("CreateEngagement() error = %v", err)
	}

	completed := models.StatusCompleted
	cancelled := models.StatusCancelled

	t.Run("scheduled to completed", func(t *testing.T) {
		updated, err := env.engagements.UpdateEngagement(presenter, engagement.ID, EngagementUpdate{Status: &completed})
		if err != nil {
			t.Fatalf("UpdateEngagement() error = %v", err)
		}
		if updated.Status != models.StatusCompleted {
			t.Errorf("Status = %s, want completed", updated.Status)
		}
	})

	t.Run("terminal state is frozen", func(t *testing.T) {
		_, err := env.engagements.UpdateEngagement(presenter, engagement.ID, EngagementUpdate{Status: &cancelled})
		if !errors.Is(err, ErrInvalidStatusChange) {
			t.Errorf("error = %v, want ErrInvalidStatusChange", err)
		}
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		updated, err := env.engagements.UpdateEngagement(presenter, engagement.ID, EngagementUpdate{Status: &completed})
		if err != nil {
			t.Fatalf("UpdateEngagement() error = %v", err)
		}
		if updated.Status != models.StatusCompleted {
			t.Errorf("Status = %s, want completed", updated.Status)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		bogus := models.EngagementStatus("paused")
		_, err := env.engagements.UpdateEngagement(presenter, engagement.ID, EngagementUpdate{Status: &bogus})
		if !errors.Is(err, ErrInvalidStatusChange) {
			t.Errorf("error = %v, want ErrInvalidStatusChange", err)
		}
	})
}

func TestVideoOwnership(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	env := newTestEnv(t)

	creator := env.approvedVolunteer(t, "vol_v1")
	offering, err := env.offerings.CreateOffering(creator, "Painting", "")
	if err != nil {
		t.Fatalf("CreateOffering() error = %v", err)
	}

	video, err := env.videos.CreateVideo(creator, offering.ID, "Watercolor Intro", "", "https://videos.example.com/1")
	if err != nil {
		t.Fatalf("CreateVideo() error = %v", err)
	}

	newTitle := "Watercolor Basics"

	t.Run("non-creator cannot update", func(t *testing.T) {
		other := env.approvedVolunteer(t, "vol_v2")
		_, err := env.videos.UpdateVideo(other, video.ID, VideoUpdate{Title: &newTitle})
		if !errors.Is(err, authz.ErrNotOwner) {
			t.Errorf("error = %v, want ErrNotOwner", err)
		}
	})

	t.Run("admin gets no ownership bypass", func(t *testing.T) {
		admin := env.registerAccount(t, "admin_v", models.RoleAdmin)
		if err := env.videos.DeleteVideo(admin, video.ID); !errors.Is(err, authz.ErrNotOwner) {
			t.Errorf("error = %v, want ErrNotOwner", err)
		}
	})

	t.Run("creator updates and deletes", func(t *testing.T) {
		updated, err := env.videos.UpdateVideo(creator, video.ID, VideoUpdate{Title: &newTitle})
		if err != nil {
			t.Fatalf("UpdateVideo() error = %v", err)
		}
		if updated.Title != newTitle {
			t.Errorf("Title = %q, want %q", updated.Title, newTitle)
		}
		if err := env.videos.DeleteVideo(creator, video.ID); err != nil {
			t.Fatalf("DeleteVideo() error = %v", err)
		}
	})
}

func TestEnrollment(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	env := newTestEnv(t)
	ctx := context.Background()

	presenter := env.approvedVolunteer(t, "vol_n1")
	offering, err := env.offerings.CreateOffering(presenter, "Coding Club", "")
	if err != nil {
		t.Fatalf("CreateOffering() error = %v", err)
	}
	engagement, err := env.engagements.CreateEngagement(presenter, offering.ID, "Scratch Games", "", time.Now().Add(time.Hour), "")
	if err != nil {
		t.Fatalf("CreateEngagement() error = %v", err)
	}

	owner, dependent := env.guardianWithDependent(t, "guard_n1")

	t.Run("missing engagement checked first", func(t *testing.T) {
		_, err := env.enrollments.Enroll(ctx, owner, dependent.ID, 99999)
		if !errors.Is(err, ErrEngagementNotFound) {
			t.Errorf("error = %v, want ErrEngagementNotFound", err)
		}
	})

	t.Run("foreign dependent reads as not found", func(t *testing.T) {
		stranger, _ := env.guardianWithDependent(t, "guard_n2")
		_, err := env.enrollments.Enroll(ctx, stranger, dependent.ID, engagement.ID)
		if !errors.Is(err, ErrDependentNotFound) {
			t.Errorf("error = %v, want ErrDependentNotFound", err)
		}
	})

	t.Run("happy path", func(t *testing.T) {
		enrollment, err := env.enrollments.Enroll(ctx, owner, dependent.ID, engagement.ID)
		if err != nil {
			t.Fatalf("Enroll() error = %v", err)
		}
		if enrollment.DependentID != dependent.ID || enrollment.EngagementID != engagement.ID {
			t.Errorf("enrollment = %+v, want dependent %d in engagement %d", enrollment, dependent.ID, engagement.ID)
		}
	})

	t.Run("double enrollment rejected", func(t *testing.T) {
		_, err := env.enrollments.Enroll(ctx, owner, dependent.ID, engagement.ID)
		if !errors.Is(err, ErrDuplicateEnrollment) {
			t.Errorf("error = %v, want ErrDuplicateEnrollment", err)
		}
	})

	t.Run("listings", func(t *testing.T) {
		forDependent, err := env.enrollments.ListForDependent(owner, dependent.ID)
		if err != nil {
			t.Fatalf("ListForDependent() error = %v", err)
		}
		if len(forDependent) != 1 {
			t.Errorf("dependent has %d enrollments, want 1", len(forDependent))
		}

		roster, err := env.enrollments.ListForEngagement(presenter, engagement.ID)
		if err != nil {
			t.Fatalf("ListForEngagement() error = %v", err)
		}
		if len(roster) != 1 {
			t.Errorf("engagement roster has %d entries, want 1", len(roster))
		}
	})

	t.Run("volunteer cannot enroll", func(t *testing.T) {
		_, err := env.enrollments.Enroll(ctx, presenter, dependent.ID, engagement.ID)
		if !errors.Is(err, authz.ErrRoleNotPermitted) {
			t.Errorf("error = %v, want ErrRoleNotPermitted", err)
		}
	})

	t.Run("guardian cannot read roster", func(t *testing.T) {
		_, err := env.enrollments.ListForEngagement(owner, engagement.ID)
		if !errors.Is(err, authz.ErrRoleNotPermitted) {
			t.Errorf("error = %v, want ErrRoleNotPermitted", err)
		}
	})
}
