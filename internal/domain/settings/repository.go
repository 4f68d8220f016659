package settings

import "context"

// SettingRepository defines the persistence interface for settings.
type SettingRepository interface {
	FindByKey(ctx context.Context, key string) (*Setting, error)
	FindAll(ctx context.Context) ([]Setting, error)
	Save(ctx context.Context, setting *Setting) error
}
