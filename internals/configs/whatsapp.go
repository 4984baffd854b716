package configs

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// WhatsAppConfig dimuat sekali saat start lalu di-inject ke notifier.
type WhatsAppConfig struct {
	APIURL             string
	APIKey             string
	DefaultCountryCode string
	Recipients         []string
	IncludeExpiry      bool
	IncludeFooter      bool
	FooterText         string
	Timeout            time.Duration
}

// Enabled true jika API key tersedia.
func (c WhatsAppConfig) Enabled() bool { return strings.TrimSpace(c.APIKey) != "" }

// LoadWhatsAppConfig membaca WHATSAPP_* dari env, lalu (opsional) file
// config/whatsapp.{yaml,json}. Nilai env menang atas file.
func LoadWhatsAppConfig() WhatsAppConfig {
	v := viper.New()
	v.SetDefault("api_url", "https://wasenderapi.com/api/send-message")
	v.SetDefault("default_country_code", "1")
	v.SetDefault("include_expiry", true)
	v.SetDefault("include_footer", true)
	v.SetDefault("footer_text", "Pour plus d'informations, veuillez visiter notre site web.")
	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("recipients", []string{})

	v.SetConfigName("whatsapp")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("[WARN] gagal baca config whatsapp: %v", err)
		}
	} else {
		log.Printf("[INFO] config whatsapp dimuat dari %s", v.ConfigFileUsed())
	}

	v.SetEnvPrefix("WHATSAPP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := WhatsAppConfig{
		APIURL:             v.GetString("api_url"),
		APIKey:             v.GetString("api_key"),
		DefaultCountryCode: strings.TrimPrefix(v.GetString("default_country_code"), "+"),
		Recipients:         splitRecipients(v.GetStringSlice("recipients")),
		IncludeExpiry:      v.GetBool("include_expiry"),
		IncludeFooter:      v.GetBool("include_footer"),
		FooterText:         v.GetString("footer_text"),
		Timeout:            v.GetDuration("timeout"),
	}
	if !cfg.Enabled() {
		log.Println("[WARN] WHATSAPP_API_KEY belum diset, notifikasi WhatsApp nonaktif")
	}
	return cfg
}

// env WHATSAPP_RECIPIENTS="+509..., +509..." datang sebagai satu elemen.
func splitRecipients(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, p := range strings.Split(item, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
