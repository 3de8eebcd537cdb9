package auth

import (
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Role capabilities", func() {
	ginkgo.It("grants parents only own-scoped dossier capabilities", func() {
		gomega.Expect(PermissionsFor(RoleParent)).To(gomega.ConsistOf(
			CapDossierCreateOwn,
			CapDossierViewOwn,
			CapDossierCommentOwn,
		))
	})

	ginkgo.It("grants secretaries intake-wide capabilities without lifecycle control", func() {
		gomega.Expect(PermissionsFor(RoleSecretary)).To(gomega.ConsistOf(
			CapDossierCreateAny,
			CapDossierViewAny,
			CapDossierUpdateAny,
			CapDossierSearch,
		))
		gomega.Expect(HasCapability(RoleSecretary, CapDossierStatusUpdate)).To(gomega.BeFalse())
	})

	ginkgo.It("grants analysts review capabilities without general editing", func() {
		gomega.Expect(PermissionsFor(RoleAnalyst)).To(gomega.ConsistOf(
			CapDossierViewAny,
			CapDossierCommentAny,
			CapDossierStatusUpdate,
			CapDossierClose,
			CapDossierValidate,
		))
		gomega.Expect(HasCapability(RoleAnalyst, CapDossierUpdateAny)).To(gomega.BeFalse())
		gomega.Expect(HasCapability(RoleAnalyst, CapDossierDeleteAny)).To(gomega.BeFalse())
	})

	ginkgo.It("reserves user and settings management plus deletion for admins", func() {
		for _, role := range []Role{RoleParent, RoleSecretary, RoleAnalyst} {
			gomega.Expect(HasCapability(role, CapUserManage)).To(gomega.BeFalse())
			gomega.Expect(HasCapability(role, CapSettingsManage)).To(gomega.BeFalse())
			gomega.Expect(HasCapability(role, CapDossierDeleteAny)).To(gomega.BeFalse())
		}
		gomega.Expect(HasCapability(RoleAdmin, CapUserManage)).To(gomega.BeTrue())
		gomega.Expect(HasCapability(RoleAdmin, CapSettingsManage)).To(gomega.BeTrue())
		gomega.Expect(HasCapability(RoleAdmin, CapDossierDeleteAny)).To(gomega.BeTrue())
	})

	ginkgo.It("gives unknown roles no capabilities at all", func() {
		gomega.Expect(PermissionsFor(Role("superuser"))).To(gomega.BeEmpty())
		gomega.Expect(HasCapability(Role(""), CapDossierViewOwn)).To(gomega.BeFalse())
	})

	ginkgo.Describe("HasAnyCapability", func() {
		ginkgo.It("matches when at least one capability is held", func() {
			gomega.Expect(HasAnyCapability(RoleParent, CapDossierViewAny, CapDossierViewOwn)).To(gomega.BeTrue())
			gomega.Expect(HasAnyCapability(RoleParent, CapDossierViewAny, CapDossierDeleteAny)).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("Role validation", func() {
		ginkgo.It("accepts exactly the four known roles", func() {
			for _, role := range []Role{RoleParent, RoleSecretary, RoleAnalyst, RoleAdmin} {
				gomega.Expect(role.Valid()).To(gomega.BeTrue())
			}
			gomega.Expect(Role("manager").Valid()).To(gomega.BeFalse())
			gomega.Expect(Role("").Valid()).To(gomega.BeFalse())
		})
	})
})
