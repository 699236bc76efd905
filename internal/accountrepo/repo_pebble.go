package accountrepo

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/go-petr/pet-broker/internal/domain"
	"github.com/go-petr/pet-broker/pkg/errorspkg"
	"github.com/go-petr/pet-broker/pkg/lockpkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var accountSeqKey = []byte("seq/account")

func accountKey(id int32) []byte {
	return []byte(fmt.Sprintf("account/%010d", id))
}

// RepoPebble keeps every account with its order history as one JSON
// record in an embedded pebble store.
type RepoPebble struct {
	db *pebble.DB

	seqMu sync.Mutex
	locks *lockpkg.KeyMutex[int32]
}

// NewRepoPebble returns account RepoPebble.
func NewRepoPebble(db *pebble.DB) *RepoPebble {
	return &RepoPebble{
		db:    db,
		locks: lockpkg.NewKeyMutex[int32](),
	}
}

// Create creates the account with the initial cash and returns it.
func (r *RepoPebble) Create(ctx context.Context, cash decimal.Decimal) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if cash.IsNegative() {
		return domain.Account{}, domain.ErrInvalidCash
	}

	r.seqMu.Lock()
	defer r.seqMu.Unlock()

	id, err := r.nextID()
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	a := domain.Account{
		ID:        id,
		Cash:      cash,
		Orders:    []domain.Order{},
		CreatedAt: time.Now().UTC(),
	}

	value, err := json.Marshal(record{&a})
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	seq := make([]byte, 4)
	binary.BigEndian.PutUint32(seq, uint32(id))

	b := r.db.NewBatch()
	defer b.Close()

	if err := b.Set(accountSeqKey, seq, nil); err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	if err := b.Set(accountKey(id), value, nil); err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	if err := b.Commit(pebble.Sync); err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

func (r *RepoPebble) nextID() (int32, error) {
	value, closer, err := r.db.Get(accountSeqKey)
	if errors.Is(err, pebble.ErrNotFound) {
		return 1, nil
	}

	if err != nil {
		return 0, err
	}
	defer closer.Close()

	if len(value) != 4 {
		return 0, fmt.Errorf("corrupted account sequence: %x", value)
	}

	return int32(binary.BigEndian.Uint32(value)) + 1, nil
}

// Get returns the account with the given id.
func (r *RepoPebble) Get(ctx context.Context, id int32, withOrders bool) (domain.Account, error) {
	a, err := r.load(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	if !withOrders {
		a.Orders = nil
	}

	return a, nil
}

func (r *RepoPebble) load(ctx context.Context, id int32) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	value, closer, err := r.db.Get(accountKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		l.Info().Int32("account_id", id).Msg("account not found")
		return domain.Account{}, domain.ErrAccountNotFound
	}

	if err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}
	defer closer.Close()

	var a domain.Account
	if err := json.Unmarshal(value, &record{&a}); err != nil {
		l.Error().Err(err).Int32("account_id", id).Msg("corrupted account record")
		return domain.Account{}, errorspkg.ErrInternal
	}

	if a.Orders == nil {
		a.Orders = []domain.Order{}
	}

	return a, nil
}

// Save stores the account if its version matches the stored one.
// Orders without ID get the next ID of the account history.
func (r *RepoPebble) Save(ctx context.Context, acc domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if acc.Cash.IsNegative() {
		return domain.Account{}, domain.ErrInvalidCash
	}

	unlock := r.locks.Lock(acc.ID)
	defer unlock()

	stored, err := r.load(ctx, acc.ID)
	if err != nil {
		return domain.Account{}, err
	}

	if stored.Version != acc.Version {
		return domain.Account{}, domain.ErrVersionConflict
	}

	saved := acc
	saved.Version++
	saved.CreatedAt = stored.CreatedAt
	saved.Orders = make([]domain.Order, len(acc.Orders))

	var lastID int64
	if n := len(stored.Orders); n > 0 {
		lastID = stored.Orders[n-1].ID
	}

	now := time.Now().UTC()

	for i, o := range acc.Orders {
		if o.ID == 0 {
			lastID++
			o.ID = lastID
			o.AccountID = acc.ID
			o.CreatedAt = now
		}

		saved.Orders[i] = o
	}

	value, err := json.Marshal(record{&saved})
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	if err := r.db.Set(accountKey(acc.ID), value, pebble.Sync); err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	return saved, nil
}

// record is the stored form of an account. Version and Orders are hidden
// from API responses but have to be persisted.
type record struct {
	*domain.Account
}

type recordJSON struct {
	ID        int32           `json:"id"`
	Cash      decimal.Decimal `json:"cash"`
	Version   int32           `json:"version"`
	Orders    []domain.Order  `json:"orders"`
	CreatedAt time.Time       `json:"created_at"`
}

func (r record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		ID:        r.ID,
		Cash:      r.Cash,
		Version:   r.Version,
		Orders:    r.Orders,
		CreatedAt: r.CreatedAt,
	})
}

func (r *record) UnmarshalJSON(data []byte) error {
	var rec recordJSON
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	*r.Account = domain.Account{
		ID:        rec.ID,
		Cash:      rec.Cash,
		Version:   rec.Version,
		Orders:    rec.Orders,
		CreatedAt: rec.CreatedAt,
	}

	return nil
}
