package store

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"ledgerboard/aggregator"
	"ledgerboard/logger"
	"ledgerboard/models"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	ErrNotFound       = errors.New("记录不存在")
	ErrUnknownAccount = errors.New("账户不存在")
	ErrUnknownParent  = errors.New("父类别不存在")
	ErrNestedTooDeep  = errors.New("类别最多只能嵌套一层")
	ErrHasChildren    = errors.New("该类别下有子类别，不能设置父类别")
)

// Repository 持久化协作者，Store 写入成功后才替换内存快照
type Repository interface {
	Load(ctx context.Context) (*aggregator.Snapshot, error)
	SaveAccount(ctx context.Context, a *models.Account) error
	DeleteAccount(ctx context.Context, id string) error
	SaveCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id string) error
	SaveTransaction(ctx context.Context, t *models.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	SaveBudget(ctx context.Context, b *models.Budget) error
	DeleteBudget(ctx context.Context, id string) error
}

// Listener 变更提交后回调，snap 为提交后的快照
type Listener func(ctx context.Context, ev Event, snap *aggregator.Snapshot)

// Store 账本状态持有者
// 四个集合作为一个不可变快照整体替换，读者拿到的快照不会被后续写入修改
// writeMu 只串行化写入（含落库），读取直接加载原子指针，不等待写入
type Store struct {
	writeMu   sync.Mutex
	snap      atomic.Pointer[aggregator.Snapshot]
	repo      Repository
	listeners []Listener
	now       func() time.Time
	newID     func() string
	newTxID   func() string
}

// Option 构造选项
type Option func(*Store)

// WithRepository 写入时同步落库
func WithRepository(repo Repository) Option {
	return func(s *Store) { s.repo = repo }
}

// WithClock 替换时间来源
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithListener 订阅变更
func WithListener(l Listener) Option {
	return func(s *Store) { s.listeners = append(s.listeners, l) }
}

// New 创建空账本
func New(opts ...Option) *Store {
	s := &Store{
		now:     time.Now,
		newID:   uuid.NewString,
		newTxID: func() string { return ulid.Make().String() },
	}
	s.snap.Store(aggregator.NewSnapshot(nil, nil, nil, nil))
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open 从仓库加载已有数据
func Open(ctx context.Context, repo Repository, opts ...Option) (*Store, error) {
	s := New(append([]Option{WithRepository(repo)}, opts...)...)
	snap, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.snap.Store(snap)
	logger.L().Infof("账本已加载: %d 个账户, %d 笔交易, %d 个类别, %d 个预算",
		len(snap.Accounts), len(snap.Transactions), len(snap.Categories), len(snap.Budgets))
	return s, nil
}

// Subscribe 注册变更监听
func (s *Store) Subscribe(l Listener) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Snapshot 当前快照，只读
func (s *Store) Snapshot() *aggregator.Snapshot {
	return s.snap.Load()
}

// Now 账本使用的当前时间
func (s *Store) Now() time.Time {
	return s.now()
}

// commit 串行执行写入：先落库，再替换快照，最后通知监听者
func (s *Store) commit(ctx context.Context, ev Event, mutate func(cur *aggregator.Snapshot) (*aggregator.Snapshot, error)) error {
	s.writeMu.Lock()
	next, err := mutate(s.snap.Load())
	if err != nil {
		s.writeMu.Unlock()
		return err
	}
	s.snap.Store(next)
	listeners := slices.Clone(s.listeners)
	s.writeMu.Unlock()

	ev.At = s.now()
	for _, l := range listeners {
		l(ctx, ev, next)
	}
	return nil
}

func appended[T any](items []T, v T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, v)
}

func replaced[T any](items []T, i int, v T) []T {
	out := slices.Clone(items)
	out[i] = v
	return out
}

func removed[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}

var (
	mu      sync.RWMutex
	current *Store
)

// Init 安装进程级账本
func Init(s *Store) {
	mu.Lock()
	defer mu.Unlock()
	current = s
}

// Current 获取进程级账本，未初始化时 panic
func Current() *Store {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		panic("账本未初始化，请先调用 store.Init")
	}
	return current
}

func (s *Store) persist(fn func(r Repository) error) error {
	if s.repo == nil {
		return nil
	}
	return fn(s.repo)
}

func indexByID[T any](items []T, id string, key func(*T) string) int {
	for i := range items {
		if key(&items[i]) == id {
			return i
		}
	}
	return -1
}
