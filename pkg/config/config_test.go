package config_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/lenscap/pkg/config"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Suite")
}

var _ = Describe("Configer", func() {
	var (
		dir   string
		cfger *config.Configer
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()

		var err error
		cfger, err = config.NewConfiger(dir)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("LoadConfig", func() {
		It("returns defaults when no config file exists", func() {
			cfg, err := cfger.LoadConfig()
			Expect(err).NotTo(HaveOccurred())

			Expect(cfg.Version).To(Equal(config.CurrentV))
			Expect(cfg.Encoder.Provider).To(Equal("openclip"))
			Expect(cfg.Encoder.Model).To(Equal("ViT-B-32"))
			Expect(cfg.Encoder.Pretrained).To(Equal("laion2b_s34b_b79k"))
			Expect(cfg.Tagging.TopK).To(Equal(uint(12)))
			Expect(cfg.Tagging.MinScore).To(Equal(0.03))
			Expect(cfg.Tagging.MinForced).To(Equal(uint(5)))
		})

		It("fills unset fields from defaults", func() {
			raw := []byte("[encoder]\nmodel = \"ViT-L-14\"\n")
			path := filepath.Join(dir, "config.toml")
			Expect(os.WriteFile(path, raw, 0o600)).To(Succeed())

			cfg, err := cfger.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Encoder.Model).To(Equal("ViT-L-14"))
			Expect(cfg.Encoder.Provider).To(Equal("openclip"))
			Expect(cfg.Tagging.TopK).To(Equal(uint(12)))
		})

		It("rejects malformed TOML", func() {
			path := filepath.Join(dir, "config.toml")
			Expect(os.WriteFile(path, []byte("not = [valid"), 0o600)).To(Succeed())

			_, err := cfger.LoadConfig()
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("SaveConfig", func() {
		It("round-trips a config through disk", func() {
			cfg := config.NewDefaultConfig()
			cfg.Encoder.Device = "cuda"
			cfg.Tagging.TopK = 8

			Expect(cfger.SaveConfig(cfg)).To(Succeed())

			loaded, err := cfger.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Encoder.Device).To(Equal("cuda"))
			Expect(loaded.Tagging.TopK).To(Equal(uint(8)))
		})

		It("rejects a nil config", func() {
			Expect(cfger.SaveConfig(nil)).To(HaveOccurred())
		})
	})

	Describe("SetConfigValue and GetConfigValue", func() {
		It("sets and reads back string keys", func() {
			Expect(cfger.SetConfigValue("encoder.model", "ViT-L-14")).To(Succeed())

			got, err := cfger.GetConfigValue("encoder.model")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal("ViT-L-14"))
		})

		It("parses numeric keys", func() {
			Expect(cfger.SetConfigValue("tagging.top_k", "7")).To(Succeed())
			Expect(cfger.SetConfigValue("tagging.min_score", "0.05")).To(Succeed())

			topK, err := cfger.GetConfigValue("tagging.top_k")
			Expect(err).NotTo(HaveOccurred())
			Expect(topK).To(Equal("7"))

			minScore, err := cfger.GetConfigValue("tagging.min_score")
			Expect(err).NotTo(HaveOccurred())
			Expect(minScore).To(Equal("0.05"))
		})

		It("rejects non-numeric input for numeric keys", func() {
			Expect(cfger.SetConfigValue("tagging.top_k", "lots")).To(HaveOccurred())
		})

		It("rejects unknown keys", func() {
			Expect(cfger.SetConfigValue("nope.nothing", "x")).To(HaveOccurred())

			_, err := cfger.GetConfigValue("nope.nothing")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("CachePath", func() {
		It("prefers the configured sqlite path", func() {
			cfg := config.NewDefaultConfig()
			cfg.Cache.SQLitePath = "/tmp/custom.db"
			Expect(cfger.CachePath(cfg)).To(Equal("/tmp/custom.db"))
		})

		It("falls back to the dot directory", func() {
			cfg := config.NewDefaultConfig()
			Expect(cfger.CachePath(cfg)).To(Equal(filepath.Join(dir, "labelcache.db")))
		})
	})

	Describe("key registry", func() {
		It("lists every supported key", func() {
			keys := config.ValidConfigKeys()
			Expect(keys).To(ContainElements(
				"encoder.provider",
				"encoder.model",
				"tagging.top_k",
				"cache.sqlite_path",
			))

			for _, k := range keys {
				Expect(config.IsValidConfigKey(k)).To(BeTrue())
			}
		})

		It("rejects unknown keys", func() {
			Expect(config.IsValidConfigKey("encoder.nope")).To(BeFalse())
		})
	})
})
