// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package store

import (
	"github.com/db47h/logicsim/internal/config"
	"github.com/pkg/errors"
)

// Open returns the store selected by cfg, or nil if cfg disables
// persistence.
//
func Open(cfg config.Store) (Store, error) {
	switch cfg.Kind {
	case "", config.StoreNone:
		return nil, nil
	case config.StoreFile:
		return NewFileStore(cfg.Dir), nil
	case config.StoreRedis:
		var opts []RedisOption
		if cfg.Redis.Prefix != "" {
			opts = append(opts, WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			opts = append(opts, WithTTL(cfg.Redis.TTL))
		}
		return NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, opts...), nil
	}
	return nil, errors.Errorf("unknown store kind %q", cfg.Kind)
}
