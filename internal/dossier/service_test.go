package dossier

import (
	"context"
	"log/slog"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	apperrors "github.com/fondationhn/dossier-management/internal"
	"github.com/fondationhn/dossier-management/internal/auth"
	"github.com/fondationhn/dossier-management/internal/core/events"
)

// Mock Repository for testing
type mockDossierRepository struct {
	dossiers      map[string]*Dossier
	returnError   bool
	errorToReturn error
}

func newMockDossierRepository() *mockDossierRepository {
	return &mockDossierRepository{dossiers: make(map[string]*Dossier)}
}

func (m *mockDossierRepository) Create(_ context.Context, d *Dossier) error {
	if m.returnError {
		return m.errorToReturn
	}
	copy := *d
	m.dossiers[d.ID] = &copy
	return nil
}

func (m *mockDossierRepository) GetByID(_ context.Context, id string) (*Dossier, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	d, ok := m.dossiers[id]
	if !ok {
		return nil, apperrors.ErrDossierNotFound
	}
	copy := *d
	return &copy, nil
}

func (m *mockDossierRepository) GetByOwner(_ context.Context, ownerID string) ([]*Dossier, error) {
	var out []*Dossier
	for _, d := range m.dossiers {
		if d.UserID == ownerID {
			copy := *d
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (m *mockDossierRepository) GetAll(_ context.Context) ([]*Dossier, error) {
	var out []*Dossier
	for _, d := range m.dossiers {
		copy := *d
		out = append(out, &copy)
	}
	return out, nil
}

func (m *mockDossierRepository) Update(_ context.Context, d *Dossier) error {
	if m.returnError {
		return m.errorToReturn
	}
	if _, ok := m.dossiers[d.ID]; !ok {
		return apperrors.ErrDossierNotFound
	}
	copy := *d
	m.dossiers[d.ID] = &copy
	return nil
}

func (m *mockDossierRepository) UpdateStatus(_ context.Context, id string, status Status) error {
	if m.returnError {
		return m.errorToReturn
	}
	d, ok := m.dossiers[id]
	if !ok {
		return apperrors.ErrDossierNotFound
	}
	d.Status = status
	return nil
}

func (m *mockDossierRepository) Delete(_ context.Context, id string) error {
	if m.returnError {
		return m.errorToReturn
	}
	if _, ok := m.dossiers[id]; !ok {
		return apperrors.ErrDossierNotFound
	}
	delete(m.dossiers, id)
	return nil
}

var _ = ginkgo.Describe("DossierService", func() {
	var (
		service   *Service
		mockRepo  *mockDossierRepository
		ctx       context.Context
		parent    *auth.User
		otherUser *auth.User
		secretary *auth.User
		analyst   *auth.User
		admin     *auth.User
		bus       *events.EventBus
	)

	validCreate := func() *CreateDossierDTO {
		return &CreateDossierDTO{
			Nom:           "Diallo",
			Prenom:        "Moussa",
			DateNaissance: time.Date(2018, time.March, 12, 0, 0, 0, 0, time.UTC),
			Sexe:          "M",
			Commune:       "Ratoma",
			ParentNom:     "Awa Diallo",
		}
	}

	ginkgo.BeforeEach(func() {
		mockRepo = newMockDossierRepository()
		bus = events.NewEventBus(slog.Default())
		service = NewService(mockRepo, bus, slog.Default())
		ctx = context.Background()

		parent = &auth.User{ID: "parent-1", Role: auth.RoleParent}
		otherUser = &auth.User{ID: "parent-2", Role: auth.RoleParent}
		secretary = &auth.User{ID: "sec-1", Role: auth.RoleSecretary}
		analyst = &auth.User{ID: "ana-1", Role: auth.RoleAnalyst}
		admin = &auth.User{ID: "adm-1", Role: auth.RoleAdmin}
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("opens the dossier with status New and the actor as owner", func() {
			// When
			d, err := service.Create(ctx, parent, validCreate())

			// Then
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(d.Status).To(gomega.Equal(StatusNew))
			gomega.Expect(d.UserID).To(gomega.Equal("parent-1"))
			gomega.Expect(d.ID).ToNot(gomega.BeEmpty())
		})

		ginkgo.It("rejects a birth date in the future", func() {
			// Given
			dto := validCreate()
			future := time.Now().Add(48 * time.Hour)
			dto.DateNaissance = future

			// When
			_, err := service.Create(ctx, parent, dto)

			// Then
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("date_naissance"))
		})

		ginkgo.It("rejects an unknown sexe value", func() {
			// Given
			dto := validCreate()
			dto.Sexe = "X"

			// When
			_, err := service.Create(ctx, parent, dto)

			// Then
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("rejects missing required fields", func() {
			// When
			_, err := service.Create(ctx, parent, &CreateDossierDTO{})

			// Then
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("GetByID", func() {
		var dossierID string

		ginkgo.BeforeEach(func() {
			d, err := service.Create(ctx, parent, validCreate())
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			dossierID = d.ID
		})

		ginkgo.It("lets the owner read their own dossier", func() {
			d, err := service.GetByID(ctx, parent, dossierID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(d.ID).To(gomega.Equal(dossierID))
		})

		ginkgo.It("answers not-found for a foreign dossier read by a parent", func() {
			_, err := service.GetByID(ctx, otherUser, dossierID)
			gomega.Expect(err).To(gomega.Equal(apperrors.ErrDossierNotFound))
		})

		ginkgo.It("lets staff with view-any read any dossier", func() {
			for _, actor := range []*auth.User{secretary, analyst, admin} {
				d, err := service.GetByID(ctx, actor, dossierID)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(d.ID).To(gomega.Equal(dossierID))
			}
		})

		ginkgo.It("answers not-found for an unknown id", func() {
			_, err := service.GetByID(ctx, admin, "missing-id")
			gomega.Expect(err).To(gomega.Equal(apperrors.ErrDossierNotFound))
		})
	})

	ginkgo.Describe("List", func() {
		ginkgo.BeforeEach(func() {
			_, err := service.Create(ctx, parent, validCreate())
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			_, err = service.Create(ctx, otherUser, validCreate())
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
		})

		ginkgo.It("returns only the actor's dossiers for a parent", func() {
			dossiers, err := service.List(ctx, parent)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(dossiers).To(gomega.HaveLen(1))
			gomega.Expect(dossiers[0].UserID).To(gomega.Equal("parent-1"))
		})

		ginkgo.It("returns everything for staff", func() {
			dossiers, err := service.List(ctx, secretary)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(dossiers).To(gomega.HaveLen(2))
		})
	})

	ginkgo.Describe("Update", func() {
		var dossierID string

		ginkgo.BeforeEach(func() {
			d, err := service.Create(ctx, parent, validCreate())
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			dossierID = d.ID
		})

		strPtr := func(s string) *string { return &s }

		ginkgo.It("lets the owner edit descriptive fields", func() {
			d, err := service.Update(ctx, parent, dossierID, &UpdateDossierDTO{Commune: strPtr("Matoto")})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(d.Commune).To(gomega.Equal("Matoto"))
		})

		ginkgo.It("lets a secretary edit any dossier", func() {
			d, err := service.Update(ctx, secretary, dossierID, &UpdateDossierDTO{Quartier: strPtr("Lambanyi")})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(*d.Quartier).To(gomega.Equal("Lambanyi"))
		})

		ginkgo.It("lets an analyst record a diagnostic but nothing else", func() {
			// Diagnostic alone passes
			d, err := service.Update(ctx, analyst, dossierID, &UpdateDossierDTO{Diagnostic: strPtr("TSA léger")})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(*d.Diagnostic).To(gomega.Equal("TSA léger"))

			// Touching other fields does not
			_, err = service.Update(ctx, analyst, dossierID, &UpdateDossierDTO{Commune: strPtr("Matoto")})
			gomega.Expect(err).To(gomega.Equal(apperrors.ErrForbidden))
		})

		ginkgo.It("hides foreign dossiers from other parents", func() {
			_, err := service.Update(ctx, otherUser, dossierID, &UpdateDossierDTO{Commune: strPtr("Matoto")})
			gomega.Expect(err).To(gomega.Equal(apperrors.ErrDossierNotFound))
		})

		ginkgo.It("forbids a status change without the capability", func() {
			_, err := service.Update(ctx, secretary, dossierID, &UpdateDossierDTO{Status: strPtr("InProgress")})
			gomega.Expect(err).To(gomega.Equal(apperrors.ErrForbidden))
		})

		ginkgo.It("applies field and status changes together for an admin", func() {
			d, err := service.Update(ctx, admin, dossierID, &UpdateDossierDTO{
				Commune: strPtr("Matoto"),
				Status:  strPtr("InProgress"),
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(d.Commune).To(gomega.Equal("Matoto"))
			gomega.Expect(d.Status).To(gomega.Equal(StatusInProgress))
		})
	})

	ginkgo.Describe("Transition", func() {
		var dossierID string

		ginkgo.BeforeEach(func() {
			d, err := service.Create(ctx, parent, validCreate())
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			dossierID = d.ID
		})

		ginkgo.It("lets an analyst move a dossier through the lifecycle", func() {
			d, err := service.Transition(ctx, analyst, dossierID, StatusInProgress)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(d.Status).To(gomega.Equal(StatusInProgress))

			d, err = service.Transition(ctx, analyst, dossierID, StatusAccepted)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(d.Status).To(gomega.Equal(StatusAccepted))
		})

		ginkgo.It("forbids transitions for roles without the capability", func() {
			_, err := service.Transition(ctx, secretary, dossierID, StatusInProgress)
			gomega.Expect(err).To(gomega.Equal(apperrors.ErrForbidden))
		})

		ginkgo.It("refuses any move out of Closed", func() {
			_, err := service.Transition(ctx, analyst, dossierID, StatusClosed)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Transition(ctx, analyst, dossierID, StatusNew)
			gomega.Expect(err).To(gomega.Equal(apperrors.ErrDossierClosed))
		})

		ginkgo.It("refuses re-closing an already closed dossier", func() {
			_, err := service.Transition(ctx, analyst, dossierID, StatusClosed)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Transition(ctx, analyst, dossierID, StatusClosed)
			gomega.Expect(err).To(gomega.Equal(apperrors.ErrDossierClosed))
		})

		ginkgo.It("treats a same-status move as a no-op", func() {
			d, err := service.Transition(ctx, analyst, dossierID, StatusNew)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(d.Status).To(gomega.Equal(StatusNew))
		})

		ginkgo.It("requires the capability even for a same-status move", func() {
			_, err := service.Transition(ctx, secretary, dossierID, StatusNew)
			gomega.Expect(err).To(gomega.Equal(apperrors.ErrForbidden))
		})

		ginkgo.It("rejects unknown target statuses", func() {
			_, err := service.Transition(ctx, analyst, dossierID, Status("Pending"))
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("Delete", func() {
		var dossierID string

		ginkgo.BeforeEach(func() {
			d, err := service.Create(ctx, parent, validCreate())
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			dossierID = d.ID
		})

		ginkgo.It("lets an admin delete any dossier", func() {
			gomega.Expect(service.Delete(ctx, admin, dossierID)).To(gomega.Succeed())
			_, err := service.GetByID(ctx, admin, dossierID)
			gomega.Expect(err).To(gomega.Equal(apperrors.ErrDossierNotFound))
		})

		ginkgo.It("forbids deletion for everyone else, owner included", func() {
			for _, actor := range []*auth.User{parent, secretary, analyst} {
				gomega.Expect(service.Delete(ctx, actor, dossierID)).To(gomega.Equal(apperrors.ErrForbidden))
			}
		})

		ginkgo.It("delivers the deletion event to subscribers before returning", func() {
			var seen []events.Event
			bus.Subscribe(events.EventDossierDeleted, func(ctx context.Context, event events.Event) error {
				seen = append(seen, event)
				return nil
			})

			gomega.Expect(service.Delete(ctx, admin, dossierID)).To(gomega.Succeed())
			gomega.Expect(seen).To(gomega.HaveLen(1))
			payload, ok := seen[0].Payload().(map[string]interface{})
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(payload["dossier_id"]).To(gomega.Equal(dossierID))
			gomega.Expect(payload["actor_id"]).To(gomega.Equal(admin.ID))
		})
	})
})
