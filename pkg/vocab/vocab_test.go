package vocab_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/lenscap/pkg/vocab"
)

func TestVocab(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Vocab Suite")
}

var _ = Describe("Labels", func() {
	It("matches the reported size", func() {
		Expect(vocab.Labels()).To(HaveLen(vocab.Size()))
	})

	It("contains no duplicates", func() {
		seen := make(map[string]bool)
		for _, label := range vocab.Labels() {
			Expect(seen[label]).To(BeFalse(), "duplicate label %q", label)
			seen[label] = true
		}
	})

	It("returns a copy callers can mutate safely", func() {
		first := vocab.Labels()
		first[0] = "mutated"
		Expect(vocab.Labels()[0]).NotTo(Equal("mutated"))
	})

	It("keeps a stable defining order", func() {
		labels := vocab.Labels()
		Expect(labels[0]).To(Equal("person"))
		Expect(labels[len(labels)-1]).To(Equal("market"))
	})
})

var _ = Describe("Prompt", func() {
	It("wraps the label in the prompt template", func() {
		Expect(vocab.Prompt("beach")).To(Equal("a photo of beach"))
		Expect(vocab.Prompt("golden hour")).To(Equal("a photo of golden hour"))
	})
})
