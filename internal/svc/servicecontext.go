package svc

import (
	"paisabot/internal/ai"
	"paisabot/internal/config"
	"paisabot/internal/db"
	"paisabot/internal/whatsapp"
)

// ServiceContext aggregates the shared dependencies handed to every
// handler and pipeline stage.
type ServiceContext struct {
	Config   config.Config
	DB       *db.Store
	WhatsApp *whatsapp.Client
	AI       *ai.Client
}

// NewServiceContext builds the context from config, opening the database.
func NewServiceContext(c config.Config) (*ServiceContext, error) {
	store, err := db.NewSQLite(c.SQLitePath)
	if err != nil {
		return nil, err
	}

	return &ServiceContext{
		Config:   c,
		DB:       store,
		WhatsApp: whatsapp.New(c.GraphBaseURL, c.WhatsAppToken, c.PhoneNumberID),
		AI:       ai.New(c.OpenAIBaseURL, c.ChatModel, c.WhisperModel),
	}, nil
}

// Close releases held resources.
func (s *ServiceContext) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}
