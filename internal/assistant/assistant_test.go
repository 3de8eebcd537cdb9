package assistant

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestAssistant(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Assistant Module Suite")
}

var _ = ginkgo.Describe("Reply", func() {
	ginkgo.It("greets back", func() {
		gomega.Expect(Reply("Bonjour !")).To(gomega.ContainSubstring("Bonjour"))
	})

	ginkgo.It("matches keywords case-insensitively inside a sentence", func() {
		reply := Reply("Comment puis-je CRÉER un nouveau dossier pour mon fils ?")
		gomega.Expect(reply).To(gomega.ContainSubstring("Nouveau dossier"))
	})

	ginkgo.It("explains the lifecycle when asked about status", func() {
		gomega.Expect(Reply("où en est mon dossier ?")).To(gomega.ContainSubstring("statut"))
	})

	ginkgo.It("describes the questionnaires", func() {
		reply := Reply("comment remplir le formulaire wisi ?")
		gomega.Expect(reply).To(gomega.ContainSubstring("WISI"))
		gomega.Expect(reply).To(gomega.ContainSubstring("TARII"))
	})

	ginkgo.It("answers the first matching rule when several could apply", func() {
		// "bonjour" rules are checked before dossier rules
		reply := Reply("bonjour, je veux créer un dossier")
		gomega.Expect(reply).To(gomega.ContainSubstring("assistant de la fondation"))
	})

	ginkgo.It("falls back on unmatched input", func() {
		gomega.Expect(Reply("quelle heure est-il ?")).To(gomega.Equal(Fallback))
	})

	ginkgo.It("falls back on empty or blank input", func() {
		gomega.Expect(Reply("")).To(gomega.Equal(Fallback))
		gomega.Expect(Reply("   ")).To(gomega.Equal(Fallback))
	})
})

var _ = ginkgo.Describe("Message handler", func() {
	var handler *Handler

	ginkgo.BeforeEach(func() {
		handler = NewHandler()
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/assistant/message", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		handler.Message(rec, req)
		return rec
	}

	ginkgo.It("wraps the reply in the success envelope", func() {
		rec := post(`{"message": "bonjour"}`)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))

		var envelope struct {
			Success bool `json:"success"`
			Data    struct {
				Reply string `json:"reply"`
			} `json:"data"`
		}
		gomega.Expect(json.NewDecoder(rec.Body).Decode(&envelope)).To(gomega.Succeed())
		gomega.Expect(envelope.Success).To(gomega.BeTrue())
		gomega.Expect(envelope.Data.Reply).To(gomega.ContainSubstring("Bonjour"))
	})

	ginkgo.It("answers the fallback for an empty message", func() {
		rec := post(`{"message": ""}`)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring(strings.Split(Fallback, ".")[0]))
	})

	ginkgo.It("rejects an unreadable body", func() {
		rec := post(`{not json`)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
	})
})
