package health

import (
	"gorm.io/gorm"

	"github.com/iliyamo/restaurant-reviews/internal/config"
)

// DefaultProbes returns the six /ping probes in report order.
func DefaultProbes(db *gorm.DB, cfg config.ProbeConfig) []Probe {
	return []Probe{
		DatabaseProbe{DB: db},
		RedisProbe{Config: cfg.Redis},
		MySQLProbe{Config: cfg.MySQL},
		MongoProbe{Config: cfg.Mongo},
		RabbitMQProbe{Config: cfg.RabbitMQ},
		MinIOProbe{Config: cfg.S3},
	}
}
