package swagger

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestSwagger(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Swagger Suite")
}

var _ = ginkgo.Describe("OpenAPI document", func() {
	var doc *openapi3.T

	ginkgo.BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
	})

	ginkgo.It("is a valid OpenAPI 3 document", func() {
		gomega.Expect(doc.Validate(context.Background())).To(gomega.Succeed())
	})

	ginkgo.It("documents every public surface of the API", func() {
		for _, path := range []string{
			"/users/register",
			"/users/login",
			"/users/profile",
			"/users",
			"/dossiers",
			"/dossiers/{id}",
			"/dossiers/{id}/status",
			"/formulaires",
			"/formulaires/{type}",
			"/formulaires/{type}/submissions",
			"/assistant/message",
			"/health",
		} {
			gomega.Expect(doc.Paths.Find(path)).ToNot(gomega.BeNil(), path)
		}
	})

	ginkgo.It("keeps the dossier status enum aligned with the lifecycle", func() {
		schema := doc.Components.Schemas["DossierStatus"]
		gomega.Expect(schema).ToNot(gomega.BeNil())
		gomega.Expect(schema.Value.Enum).To(gomega.ConsistOf(
			"New", "InProgress", "Incomplete", "Accepted", "Rejected", "Closed",
		))
	})

	ginkgo.It("keeps the role enum aligned with the permission model", func() {
		schema := doc.Components.Schemas["Role"]
		gomega.Expect(schema).ToNot(gomega.BeNil())
		gomega.Expect(schema.Value.Enum).To(gomega.ConsistOf(
			"parent", "secretary", "analyst", "admin",
		))
	})
})
