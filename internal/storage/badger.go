package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sharepay/sharepay-go/internal/core/domain"
	"github.com/sharepay/sharepay-go/internal/telemetry/logger"
)

// DefaultBadgerKey is the record key used when none is configured.
const DefaultBadgerKey = "sharepay/credentials"

// BadgerConfig configures the embedded Badger backend.
type BadgerConfig struct {
	// Dir is the database directory.
	Dir string

	// Key is the record key. Default: DefaultBadgerKey.
	Key string

	// CacheSize is the block cache size in bytes. A credential record is
	// tiny, so the default stays small.
	// Default: 1MB
	CacheSize int64

	// ValueLogFileSize bounds each value log file.
	// Default: 16MB
	ValueLogFileSize int64

	// SyncWrites fsyncs every commit.
	// Default: true
	SyncWrites bool

	// GCDiscardRatio is passed to RunValueLogGC on Close.
	// Default: 0.5
	GCDiscardRatio float64
}

// DefaultBadgerConfig returns defaults sized for a single record.
func DefaultBadgerConfig(dir string) BadgerConfig {
	return BadgerConfig{
		Dir:              dir,
		Key:              DefaultBadgerKey,
		CacheSize:        1 << 20,
		ValueLogFileSize: 16 << 20,
		SyncWrites:       true,
		GCDiscardRatio:   0.5,
	}
}

// BadgerBackend stores the credential record in an embedded Badger DB.
type BadgerBackend struct {
	db     *badger.DB
	cfg    BadgerConfig
	key    []byte
	logger logger.Logger

	sizeGauge *prometheus.GaugeVec
}

// NewBadgerBackend opens the database under cfg.Dir.
func NewBadgerBackend(cfg BadgerConfig, log logger.Logger) (*BadgerBackend, error) {
	if cfg.Dir == "" {
		return nil, domain.ErrInvalidArgument.WithDetails("badger: dir is required")
	}
	if cfg.Key == "" {
		cfg.Key = DefaultBadgerKey
	}
	if log == nil {
		log = logger.Discard()
	}

	opts := badger.DefaultOptions(cfg.Dir)
	opts.Logger = &badgerLogger{logger: log}
	opts.BlockCacheSize = cfg.CacheSize
	opts.ValueLogFileSize = cfg.ValueLogFileSize
	opts.SyncWrites = cfg.SyncWrites
	opts.NumMemtables = 1
	opts.NumLevelZeroTables = 1
	opts.NumLevelZeroTablesStall = 2

	db, err := badger.Open(opts)
	if err != nil {
		return nil, domain.ErrStorage.Wrap(fmt.Errorf("badger: open db: %w", err))
	}

	log.Debug("badger backend opened", "dir", cfg.Dir)

	return &BadgerBackend{
		db:     db,
		cfg:    cfg,
		key:    []byte(cfg.Key),
		logger: log,
	}, nil
}

// Load reads the record.
func (b *BadgerBackend) Load(ctx context.Context) (*domain.Credentials, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.ErrNoCredential
	}
	if err != nil {
		return nil, badgerErr(err)
	}

	var creds domain.Credentials
	if err := json.Unmarshal(value, &creds); err != nil {
		return nil, domain.ErrCredentialCorrupt.Wrap(err)
	}
	if creds.Empty() {
		return nil, domain.ErrNoCredential
	}
	return &creds, nil
}

// Save writes the record in one transaction.
func (b *BadgerBackend) Save(ctx context.Context, creds *domain.Credentials) error {
	value, err := json.Marshal(creds)
	if err != nil {
		return domain.ErrStorage.Wrap(err)
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(b.key, value)
	})
	if err != nil {
		return badgerErr(err)
	}
	b.updateMetrics()
	return nil
}

// Delete removes the record.
func (b *BadgerBackend) Delete(ctx context.Context) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(b.key)
	})
	if err != nil {
		return badgerErr(err)
	}
	b.updateMetrics()
	return nil
}

// Close runs one value log GC pass and closes the DB.
func (b *BadgerBackend) Close() error {
	if b.db.IsClosed() {
		return nil
	}
	if err := b.db.RunValueLogGC(b.cfg.GCDiscardRatio); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		b.logger.Debug("badger gc skipped", "error", err)
	}
	if err := b.db.Close(); err != nil {
		return domain.ErrStorage.Wrap(fmt.Errorf("badger: close db: %w", err))
	}
	b.logger.Debug("badger backend closed")
	return nil
}

// RegisterMetrics exposes the on-disk size of the database.
func (b *BadgerBackend) RegisterMetrics(reg prometheus.Registerer) error {
	b.sizeGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "sharepay",
		Subsystem: "badger",
		Name:      "size_bytes",
		Help:      "Badger storage size in bytes, by part.",
	}, []string{"part"})
	if err := reg.Register(b.sizeGauge); err != nil {
		return err
	}
	b.updateMetrics()
	return nil
}

func (b *BadgerBackend) updateMetrics() {
	if b.sizeGauge == nil {
		return
	}
	lsm, vlog := b.db.Size()
	b.sizeGauge.WithLabelValues("lsm").Set(float64(lsm))
	b.sizeGauge.WithLabelValues("vlog").Set(float64(vlog))
}

func badgerErr(err error) error {
	if errors.Is(err, badger.ErrDBClosed) {
		return domain.ErrStoreClosed
	}
	return domain.ErrStorage.Wrap(err)
}

// badgerLogger adapts logger.Logger to badger.Logger.
type badgerLogger struct {
	logger logger.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
