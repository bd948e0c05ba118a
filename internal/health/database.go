package health

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// DatabaseProbe runs SELECT 1 on the primary database.
type DatabaseProbe struct {
	DB *gorm.DB
}

func (DatabaseProbe) Name() string { return ResourceDatabase }

func (p DatabaseProbe) Check(ctx context.Context) error {
	if p.DB == nil {
		return fmt.Errorf("%w: no primary database", ErrMisconfigured)
	}
	var one int
	if err := p.DB.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return err
	}
	if one != 1 {
		return fmt.Errorf("SELECT 1 returned %d", one)
	}
	return nil
}
