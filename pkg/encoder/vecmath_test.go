package encoder_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/lenscap/pkg/encoder"
)

func TestEncoder(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Encoder Suite")
}

var _ = Describe("Normalize", func() {
	It("scales a vector to unit norm", func() {
		v := encoder.Normalize([]float32{3, 4})
		Expect(v[0]).To(BeNumerically("~", 0.6, 1e-6))
		Expect(v[1]).To(BeNumerically("~", 0.8, 1e-6))
	})

	It("leaves a unit vector unchanged", func() {
		v := encoder.Normalize([]float32{0, 1, 0})
		Expect(v).To(Equal([]float32{0, 1, 0}))
	})

	It("returns a zero vector unchanged", func() {
		v := encoder.Normalize([]float32{0, 0, 0})
		Expect(v).To(Equal([]float32{0, 0, 0}))
	})

	It("handles nil and empty input", func() {
		Expect(encoder.Normalize(nil)).To(BeNil())
		Expect(encoder.Normalize([]float32{})).To(BeEmpty())
	})
})
