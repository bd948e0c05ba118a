package health

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/restaurant-reviews/internal/config"
)

// mysqlAccessDenied is ER_ACCESS_DENIED_ERROR.
const mysqlAccessDenied = 1045

// MySQLProbe opens a connection to the configured MySQL server and pings it.
type MySQLProbe struct {
	Config config.MySQLProbeConfig
}

func (MySQLProbe) Name() string { return ResourceMySQL }

func (p MySQLProbe) Check(ctx context.Context) error {
	db, err := sql.Open("mysql", p.Config.DSN())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMisconfigured, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlAccessDenied {
			return fmt.Errorf("%w: %v", ErrAuth, err)
		}
		return err
	}
	return nil
}
