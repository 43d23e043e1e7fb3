package openclip_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/lenscap/pkg/encoder"
	"github.com/papercomputeco/lenscap/pkg/encoder/openclip"
)

func TestOpenCLIP(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "OpenCLIP Suite")
}

type capturedRequest struct {
	Path       string
	Model      string `json:"model"`
	Pretrained string `json:"pretrained"`
	Device     string `json:"device"`
	Text       string `json:"text"`
	Image      string `json:"image"`
}

var _ = Describe("Client", func() {
	var (
		server   *httptest.Server
		captured *capturedRequest
		respond  func(w http.ResponseWriter)
		ctx      context.Context
	)

	newClient := func() *openclip.Client {
		c, err := openclip.NewClient(openclip.Config{
			BaseURL:    server.URL,
			Model:      "ViT-B-32",
			Pretrained: "laion2b_s34b_b79k",
			Device:     "cpu",
		})
		Expect(err).NotTo(HaveOccurred())
		return c
	}

	BeforeEach(func() {
		ctx = context.Background()
		captured = nil
		respond = func(w http.ResponseWriter) {
			json.NewEncoder(w).Encode(map[string]any{"embedding": []float32{3, 4}})
		}

		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req capturedRequest
			Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
			req.Path = r.URL.Path
			captured = &req
			respond(w)
		}))
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("EncodeText", func() {
		It("posts the prompt with the model identity and normalizes the result", func() {
			client := newClient()
			defer client.Close()

			vec, err := client.EncodeText(ctx, "a photo of beach")
			Expect(err).NotTo(HaveOccurred())

			Expect(captured.Path).To(Equal("/embed/text"))
			Expect(captured.Model).To(Equal("ViT-B-32"))
			Expect(captured.Pretrained).To(Equal("laion2b_s34b_b79k"))
			Expect(captured.Device).To(Equal("cpu"))
			Expect(captured.Text).To(Equal("a photo of beach"))
			Expect(captured.Image).To(BeEmpty())

			Expect(vec[0]).To(BeNumerically("~", 0.6, 1e-6))
			Expect(vec[1]).To(BeNumerically("~", 0.8, 1e-6))
		})
	})

	Describe("EncodeImage", func() {
		It("sends the image bytes base64-encoded", func() {
			imgPath := filepath.Join(GinkgoT().TempDir(), "pic.jpg")
			Expect(os.WriteFile(imgPath, []byte("fake image bytes"), 0o600)).To(Succeed())

			client := newClient()
			defer client.Close()

			_, err := client.EncodeImage(ctx, imgPath)
			Expect(err).NotTo(HaveOccurred())

			Expect(captured.Path).To(Equal("/embed/image"))
			Expect(captured.Text).To(BeEmpty())

			decoded, err := base64.StdEncoding.DecodeString(captured.Image)
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded).To(Equal([]byte("fake image bytes")))
		})

		It("fails on a missing image file", func() {
			client := newClient()
			defer client.Close()

			_, err := client.EncodeImage(ctx, "/nonexistent/pic.jpg")
			Expect(err).To(MatchError(encoder.ErrEncoding))
		})
	})

	Describe("error handling", func() {
		It("surfaces sidecar-reported errors", func() {
			respond = func(w http.ResponseWriter) {
				json.NewEncoder(w).Encode(map[string]any{"error": "model load failed"})
			}

			client := newClient()
			defer client.Close()

			_, err := client.EncodeText(ctx, "hello")
			Expect(err).To(MatchError(encoder.ErrEncoding))
			Expect(err.Error()).To(ContainSubstring("model load failed"))
		})

		It("surfaces non-200 responses", func() {
			respond = func(w http.ResponseWriter) {
				http.Error(w, "overloaded", http.StatusServiceUnavailable)
			}

			client := newClient()
			defer client.Close()

			_, err := client.EncodeText(ctx, "hello")
			Expect(err).To(MatchError(encoder.ErrEncoding))
			Expect(err.Error()).To(ContainSubstring("503"))
		})

		It("rejects an empty embedding", func() {
			respond = func(w http.ResponseWriter) {
				json.NewEncoder(w).Encode(map[string]any{"embedding": []float32{}})
			}

			client := newClient()
			defer client.Close()

			_, err := client.EncodeText(ctx, "hello")
			Expect(err).To(MatchError(encoder.ErrEncoding))
		})
	})
})
