package caption_test

import (
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/lenscap/pkg/caption"
)

func TestCaption(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Caption Suite")
}

var _ = Describe("Build", func() {
	It("returns the fallback for no tags", func() {
		Expect(caption.Build(nil)).To(Equal("photo"))
		Expect(caption.Build([]string{})).To(Equal("photo"))
	})

	It("renders a single tag without extras", func() {
		Expect(caption.Build([]string{"x"})).To(Equal("photo of x"))
	})

	It("joins extras with commas", func() {
		Expect(caption.Build([]string{"a", "b", "c"})).To(Equal("photo of a with b, c"))
	})

	It("uses at most four extras", func() {
		tags := []string{"a", "b", "c", "d", "e", "f", "g"}
		Expect(caption.Build(tags)).To(Equal("photo of a with b, c, d, e"))
	})

	It("is deterministic", func() {
		tags := []string{"beach", "ocean", "sunset"}
		first := caption.Build(tags)
		Expect(caption.Build(tags)).To(Equal(first))
	})
})

var _ = Describe("Tokens", func() {
	It("lowercases and splits on non-alphanumerics", func() {
		Expect(caption.Tokens("photo of Golden-Hour Light")).To(Equal([]string{"golden", "hour", "light"}))
	})

	It("drops short tokens", func() {
		Expect(caption.Tokens("photo of an ox")).To(BeEmpty())
	})

	It("drops stopwords including scene and photo", func() {
		Expect(caption.Tokens("a photo of the scene with water")).To(Equal([]string{"water"}))
	})

	It("deduplicates preserving first occurrence", func() {
		Expect(caption.Tokens("water water beach water")).To(Equal([]string{"water", "beach"}))
	})

	It("keeps digit runs", func() {
		Expect(caption.Tokens("route 66000 sign")).To(Equal([]string{"route", "66000", "sign"}))
	})
})

var _ = Describe("Merge", func() {
	It("concatenates tags before extra tokens", func() {
		Expect(caption.Merge([]string{"beach"}, []string{"ocean"})).To(Equal([]string{"beach", "ocean"}))
	})

	It("lowercases and trims entries", func() {
		Expect(caption.Merge([]string{" Beach "}, []string{"OCEAN"})).To(Equal([]string{"beach", "ocean"}))
	})

	It("drops empty entries", func() {
		Expect(caption.Merge([]string{"", "  "}, []string{"ocean"})).To(Equal([]string{"ocean"}))
	})

	It("deduplicates case-insensitively", func() {
		merged := caption.Merge([]string{"Beach", "beach"}, []string{"BEACH"})
		Expect(merged).To(Equal([]string{"beach"}))
	})

	It("caps output at the maximum tag count", func() {
		tags := make([]string, 40)
		for i := range tags {
			tags[i] = strings.Repeat("x", i+1)
		}

		merged := caption.Merge(tags, nil)
		Expect(merged).To(HaveLen(caption.MaxTags))
	})

	It("is idempotent", func() {
		tags := []string{"beach", "ocean", "sunset"}
		tokens := []string{"golden", "hour"}

		once := caption.Merge(tags, tokens)
		again := caption.Merge(once, nil)
		Expect(again).To(Equal(once))
	})
})

var _ = Describe("Compose", func() {
	It("produces a caption and merged tag set", func() {
		res := caption.Compose([]string{"beach", "ocean", "sunset"})
		Expect(res.Caption).To(Equal("photo of beach with ocean, sunset"))
		Expect(res.Tags).To(Equal([]string{"beach", "ocean", "sunset"}))
	})

	It("mines multi-word tags for extra tokens", func() {
		res := caption.Compose([]string{"golden hour", "beach"})
		Expect(res.Caption).To(Equal("photo of golden hour with beach"))
		Expect(res.Tags).To(Equal([]string{"golden hour", "beach", "golden", "hour"}))
	})

	It("never returns an empty caption", func() {
		res := caption.Compose(nil)
		Expect(res.Caption).To(Equal("photo"))
		Expect(res.Tags).To(BeEmpty())
	})
})
