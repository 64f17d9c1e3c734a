package plugin

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ContextKey is used for context values.
type ContextKey string

const (
	// ContextKeyTimeout sets operation timeout.
	ContextKeyTimeout ContextKey = "timeout"
	// ContextKeyPluginID sets plugin ID for logging.
	ContextKeyPluginID ContextKey = "plugin_id"
)

// WithTimeout adds a timeout to the context.
func WithTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}

// WithPluginID adds the plugin ID to the context for logging.
func WithPluginID(parent context.Context, pluginID string) context.Context {
	return context.WithValue(parent, ContextKeyPluginID, pluginID)
}

// GetPluginID retrieves the plugin ID from context.
func GetPluginID(ctx context.Context) (string, bool) {
	pluginID, ok := ctx.Value(ContextKeyPluginID).(string)
	return pluginID, ok
}

// ParameterTransaction batches parameter changes with rollback, used by
// main-thread callers (e.g. preset load) that must apply several
// parameters atomically or not at all. Grounded on clapgo's
// ParameterTransactionImpl, adapted to the pure-Go PluginBase.
type ParameterTransaction struct {
	ctx      context.Context
	cancel   context.CancelFunc
	changes  map[uint32]float64
	original map[uint32]float64
	plugin   *PluginBase
	mu       sync.Mutex
	applied  bool
}

// NewParameterTransaction creates a new parameter transaction.
func NewParameterTransaction(ctx context.Context, plugin *PluginBase) *ParameterTransaction {
	txCtx, cancel := context.WithCancel(ctx)
	return &ParameterTransaction{
		ctx:      txCtx,
		cancel:   cancel,
		changes:  make(map[uint32]float64),
		original: make(map[uint32]float64),
		plugin:   plugin,
	}
}

// SetParameter stages a parameter change in the transaction.
func (t *ParameterTransaction) SetParameter(id uint32, value float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	select {
	case <-t.ctx.Done():
		return t.ctx.Err()
	default:
	}

	if t.applied {
		return fmt.Errorf("transaction already applied")
	}

	if _, exists := t.changes[id]; !exists {
		if currentValue, err := t.plugin.ParamManager.GetValue(id); err == nil {
			t.original[id] = currentValue
		}
	}

	t.changes[id] = value
	return nil
}

// Commit applies all staged parameter changes, rolling back on first failure.
func (t *ParameterTransaction) Commit() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	select {
	case <-t.ctx.Done():
		return t.ctx.Err()
	default:
	}

	if t.applied {
		return fmt.Errorf("transaction already applied")
	}

	for id, value := range t.changes {
		if err := t.plugin.ParamManager.SetValue(id, value); err != nil {
			t.rollbackPartial(id)
			return fmt.Errorf("failed to apply parameter %d: %w", id, err)
		}
	}

	t.applied = true
	t.cancel()
	return nil
}

// Rollback restores every parameter touched by the transaction.
func (t *ParameterTransaction) Rollback() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.applied {
		for id, originalValue := range t.original {
			t.plugin.ParamManager.SetValue(id, originalValue)
		}
	}

	t.cancel()
	return nil
}

// rollbackPartial restores parameters applied before failedID.
func (t *ParameterTransaction) rollbackPartial(failedID uint32) {
	for id, originalValue := range t.original {
		if id == failedID {
			continue
		}
		t.plugin.ParamManager.SetValue(id, originalValue)
	}
}

// Context returns the transaction's context.
func (t *ParameterTransaction) Context() context.Context {
	return t.ctx
}
