package textserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/papercomputeco/lenscap/pkg/textserver"
	testutils "github.com/papercomputeco/lenscap/pkg/utils/test"
)

func TestTextServer(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Text Server Suite")
}

var _ = Describe("Server", func() {
	var (
		enc *testutils.MockEncoder
		srv *textserver.Server
		out bytes.Buffer
		ctx context.Context
	)

	BeforeEach(func() {
		enc = testutils.NewMockEncoder()
		srv = textserver.New(enc, zap.NewNop())
		out.Reset()
		ctx = context.Background()
	})

	// runLines feeds input through the server and returns the output lines.
	runLines := func(input string) []string {
		err := srv.Run(ctx, strings.NewReader(input), &out)
		Expect(err).NotTo(HaveOccurred())

		raw := strings.TrimRight(out.String(), "\n")
		if raw == "" {
			return nil
		}
		return strings.Split(raw, "\n")
	}

	It("answers a valid request with a correlated vector", func() {
		enc.TextEmbeddings["sunset over water"] = []float32{0.5, 0.5}

		lines := runLines(`{"id":1,"q":"sunset over water"}` + "\n")
		Expect(lines).To(HaveLen(1))

		var resp struct {
			ID     int       `json:"id"`
			Vector []float32 `json:"vector"`
			Error  string    `json:"error"`
		}
		Expect(json.Unmarshal([]byte(lines[0]), &resp)).To(Succeed())
		Expect(resp.ID).To(Equal(1))
		Expect(resp.Vector).To(Equal([]float32{0.5, 0.5}))
		Expect(resp.Error).To(BeEmpty())
	})

	It("echoes non-numeric correlation ids unchanged", func() {
		lines := runLines(`{"id":"abc-123","q":"hello"}` + "\n")
		Expect(lines).To(HaveLen(1))
		Expect(lines[0]).To(ContainSubstring(`"id":"abc-123"`))
		Expect(lines[0]).To(ContainSubstring(`"vector"`))
	})

	It("rejects an empty query with the original id", func() {
		lines := runLines(`{"id":2,"q":""}` + "\n")
		Expect(lines).To(HaveLen(1))
		Expect(lines[0]).To(MatchJSON(`{"id":2,"error":"empty query"}`))
	})

	It("treats a whitespace-only query as empty", func() {
		lines := runLines(`{"id":3,"q":"   "}` + "\n")
		Expect(lines).To(HaveLen(1))
		Expect(lines[0]).To(MatchJSON(`{"id":3,"error":"empty query"}`))
	})

	It("reports a parse error with a null id and keeps serving", func() {
		input := "not json\n" + `{"id":4,"q":"hello"}` + "\n"
		lines := runLines(input)
		Expect(lines).To(HaveLen(2))

		Expect(lines[0]).To(ContainSubstring(`"id":null`))
		Expect(lines[0]).To(ContainSubstring(`"error"`))

		Expect(lines[1]).To(ContainSubstring(`"id":4`))
		Expect(lines[1]).To(ContainSubstring(`"vector"`))
	})

	It("reports an encoding failure with the original id and keeps serving", func() {
		enc.FailOn = "boom"

		input := `{"id":5,"q":"boom"}` + "\n" + `{"id":6,"q":"fine"}` + "\n"
		lines := runLines(input)
		Expect(lines).To(HaveLen(2))

		Expect(lines[0]).To(ContainSubstring(`"id":5`))
		Expect(lines[0]).To(ContainSubstring(`"error"`))
		Expect(lines[0]).NotTo(ContainSubstring(`"vector"`))

		Expect(lines[1]).To(ContainSubstring(`"id":6`))
		Expect(lines[1]).To(ContainSubstring(`"vector"`))
	})

	It("produces no output for blank lines", func() {
		lines := runLines("\n   \n\t\n")
		Expect(lines).To(BeEmpty())
	})

	It("emits a null id when the request carries none", func() {
		lines := runLines(`{"q":"hello"}` + "\n")
		Expect(lines).To(HaveLen(1))
		Expect(lines[0]).To(ContainSubstring(`"id":null`))
		Expect(lines[0]).To(ContainSubstring(`"vector"`))
	})

	It("exits cleanly on end-of-input", func() {
		err := srv.Run(ctx, strings.NewReader(""), &out)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Len()).To(BeZero())
	})

	It("preserves input order in its responses", func() {
		enc.TextEmbeddings["first"] = []float32{1}
		enc.TextEmbeddings["second"] = []float32{2}

		input := `{"id":1,"q":"first"}` + "\n" + `{"id":2,"q":"second"}` + "\n"
		lines := runLines(input)
		Expect(lines).To(HaveLen(2))
		Expect(lines[0]).To(ContainSubstring(`"id":1`))
		Expect(lines[1]).To(ContainSubstring(`"id":2`))
	})
})
