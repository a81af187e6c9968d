// Copyright 2022 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2022 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

const (
	dfltMaxOpenConns    = 10
	dfltConnMaxLifetime = 5 * time.Minute
)

// Conf describes a MySQL connection
type Conf struct {
	Host     string `json:"host"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`

	// MaxOpenConns limits the pool size, zero means a default value
	MaxOpenConns int `json:"maxOpenConns"`
}

func (conf *Conf) Validate() error {
	if conf.Host == "" {
		return fmt.Errorf("missing database host")
	}
	if conf.Name == "" {
		return fmt.Errorf("missing database name")
	}
	if conf.User == "" {
		return fmt.Errorf("missing database user")
	}
	return nil
}

// DSN returns a data source name (with password masked when
// `masked` is true, e.g. for logging).
func (conf *Conf) DSN(masked bool) string {
	mconf := mysql.NewConfig()
	mconf.Net = "tcp"
	mconf.Addr = conf.Host
	mconf.User = conf.User
	mconf.Passwd = conf.Password
	if masked {
		mconf.Passwd = "****"
	}
	mconf.DBName = conf.Name
	mconf.ParseTime = true
	mconf.Loc = time.Local
	mconf.Params = map[string]string{"autocommit": "true"}
	return mconf.FormatDSN()
}

type Adapter struct {
	db      *sql.DB
	conf    Conf
	isAdHoc bool
}

func (a *Adapter) DB() *sql.DB {
	return a.db
}

func (a *Adapter) DBName() string {
	return a.conf.Name
}

func (a *Adapter) Conf() Conf {
	return a.conf
}

func (a *Adapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

// Close closes the wrapped database connection.
// Only connections which are not "ad-hoc" can
// be closed this way. This applies e.g. for
// the "import-tuned" connection which is meant
// to live just for the time of import and then
// closed.
// In case the adapter is closed for a non-adhoc
// connection, the method panics.
func (a *Adapter) Close() error {
	if !a.isAdHoc {
		panic("trying to close non-adhoc database Adapter")
	}
	return a.db.Close()
}

func OpenDB(conf Conf) (*Adapter, error) {
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db, err := sql.Open("mysql", conf.DSN(false))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	maxOpen := conf.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = dfltMaxOpenConns
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetConnMaxLifetime(dfltConnMaxLifetime)
	return &Adapter{db: db, conf: conf}, nil
}

// OpenImportTunedDB creates an Adapter instance with
// undrelying connection session having slightly modified
// parameters suitable for faster data import (unique checks disabled,
// foreign checks disabled).
// The returned adapter must be closed by the caller.
func OpenImportTunedDB(conf Conf) (*Adapter, error) {
	a, err := OpenDB(conf)
	if err != nil {
		return nil, err
	}
	a.isAdHoc = true
	// session variables are per connection
	a.db.SetMaxOpenConns(1)
	for _, q := range []string{
		"SET SESSION unique_checks = 0",
		"SET SESSION foreign_key_checks = 0",
	} {
		if _, err = a.db.Exec(q); err != nil {
			a.db.Close()
			return nil, fmt.Errorf("failed to tune database session: %w", err)
		}
	}
	return a, nil
}
