package main

import (
	"fmt"
	"net/http"

	"plantreport/auth"
	"plantreport/config"
	"plantreport/web"

	"github.com/sirupsen/logrus"
)

// GetConfigHandler は現在の設定を返します
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		web.WriteJSON(w, http.StatusOK, config.GetConfig())
	}
}

// SaveConfigHandler は設定を保存します。管理者のみ実行できます。
func SaveConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c := auth.FromContext(r.Context()); c == nil || !c.IsManager() {
			web.WriteJSONError(w, "only managers can change settings", http.StatusForbidden)
			return
		}

		newCfg := config.GetConfig()
		if err := web.Decode(r, &newCfg); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := validateConfig(newCfg); err != nil {
			web.WriteJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := config.SaveConfig(newCfg); err != nil {
			config.LogError(config.GetLogger(), "main", "SaveConfigHandler", "save config", nil, err)
			web.WriteJSONError(w, "failed to save settings", http.StatusInternalServerError)
			return
		}
		web.WriteJSON(w, http.StatusOK, map[string]string{"message": "Settings saved"})
	}
}

func validateConfig(c config.Config) error {
	if c.LogLevel != "" {
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("logLevel: %w", err)
		}
	}
	if c.TokenHours < 0 {
		return fmt.Errorf("tokenHours must not be negative")
	}
	switch c.DBDriver {
	case "", "sqlite3", "postgres":
	default:
		return fmt.Errorf("dbDriver must be sqlite3 or postgres")
	}
	return nil
}
