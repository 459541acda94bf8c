package service

import (
	"context"
	"sync"
	"time"

	"github.com/reusse-app/backend/internal/model"
	"gorm.io/gorm"
)

// In-memory repository fakes. The mutex on the request fake matters:
// the accept test hits it from two goroutines.

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*model.Profile
	nextID   uint64
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*model.Profile{}}
}

func (f *fakeProfileRepo) Create(_ context.Context, p *model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.profiles[p.UserID] = &cp
	return nil
}

func (f *fakeProfileRepo) FindByUser(_ context.Context, userID string) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, userID string, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range updates {
		switch k {
		case "phone":
			s := v.(string)
			p.Phone = &s
		case "bio":
			s := v.(string)
			p.Bio = &s
		case "preferred_contact_method":
			p.PreferredContactMethod = v.(string)
		}
	}
	return nil
}

func (f *fakeProfileRepo) UpdateStatus(_ context.Context, userID string, status model.ProfileStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return 0, nil
	}
	p.Status = status
	return 1, nil
}

func (f *fakeProfileRepo) ListPendingReusses(_ context.Context) ([]model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Profile
	for _, p := range f.profiles {
		if p.Role == model.RoleReusse && p.Status == model.ProfileStatusPending {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) CountByRole(_ context.Context, role model.Role) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, p := range f.profiles {
		if p.Role == role {
			n++
		}
	}
	return n, nil
}

func (f *fakeProfileRepo) CountByRoleAndStatus(_ context.Context, role model.Role, status model.ProfileStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, p := range f.profiles {
		if p.Role == role && p.Status == status {
			n++
		}
	}
	return n, nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[uint64]*model.Request
	nextID   uint64
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: map[uint64]*model.Request{}}
}

func (f *fakeRequestRepo) Create(_ context.Context, r *model.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	r.ID = f.nextID
	r.CreatedAt = time.Now()
	cp := *r
	f.requests[r.ID] = &cp
	return nil
}

func (f *fakeRequestRepo) FindByID(_ context.Context, id uint64) (*model.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRequestRepo) ListBySeller(_ context.Context, sellerID string) ([]model.Request, error) {
	return f.filter(func(r *model.Request) bool { return r.SellerID == sellerID }), nil
}

func (f *fakeRequestRepo) ListByReusse(_ context.Context, reusseID string) ([]model.Request, error) {
	return f.filter(func(r *model.Request) bool { return r.ReusseID != nil && *r.ReusseID == reusseID }), nil
}

func (f *fakeRequestRepo) ListAll(_ context.Context) ([]model.Request, error) {
	return f.filter(func(*model.Request) bool { return true }), nil
}

func (f *fakeRequestRepo) ListAvailable(_ context.Context) ([]model.Request, error) {
	return f.filter(func(r *model.Request) bool {
		return r.Status == model.RequestStatusPending && r.ReusseID == nil
	}), nil
}

func (f *fakeRequestRepo) ListIDsByParty(_ context.Context, uid string) ([]uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []uint64
	for _, r := range f.requests {
		if r.IsParty(uid) {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

func (f *fakeRequestRepo) Update(_ context.Context, id uint64, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range updates {
		switch k {
		case "status":
			r.Status = v.(model.RequestStatus)
		case "completed_at":
			t := v.(time.Time)
			r.CompletedAt = &t
		case "reusse_id":
			s := v.(string)
			r.ReusseID = &s
		}
	}
	return nil
}

func (f *fakeRequestRepo) AcceptIfPending(_ context.Context, id uint64, reusseID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok || r.Status != model.RequestStatusPending {
		return 0, nil
	}
	r.ReusseID = &reusseID
	r.Status = model.RequestStatusMatched
	return 1, nil
}

func (f *fakeRequestRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.requests)), nil
}

func (f *fakeRequestRepo) CountActive(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.requests {
		if r.Status != model.RequestStatusCompleted {
			n++
		}
	}
	return n, nil
}

func (f *fakeRequestRepo) filter(keep func(*model.Request) bool) []model.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Request
	for _, r := range f.requests {
		if keep(r) {
			out = append(out, *r)
		}
	}
	return out
}

type fakeItemRepo struct {
	mu     sync.Mutex
	items  map[uint64]*model.Item
	txns   []model.Transaction
	nextID uint64
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[uint64]*model.Item{}}
}

func (f *fakeItemRepo) Create(_ context.Context, item *model.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	item.ID = f.nextID
	item.CreatedAt = time.Now()
	cp := *item
	f.items[item.ID] = &cp
	return nil
}

func (f *fakeItemRepo) FindByID(_ context.Context, id uint64) (*model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *item
	return &cp, nil
}

func (f *fakeItemRepo) ListBySeller(_ context.Context, sellerID string) ([]model.Item, error) {
	return f.filter(func(i *model.Item) bool { return i.SellerID == sellerID }), nil
}

func (f *fakeItemRepo) ListByReusse(_ context.Context, reusseID string) ([]model.Item, error) {
	return f.filter(func(i *model.Item) bool { return i.ReusseID == reusseID }), nil
}

func (f *fakeItemRepo) ListByRequest(_ context.Context, requestID uint64) ([]model.Item, error) {
	return f.filter(func(i *model.Item) bool { return i.RequestID == requestID }), nil
}

func (f *fakeItemRepo) Update(_ context.Context, id uint64, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range updates {
		switch k {
		case "status":
			item.Status = v.(model.ItemStatus)
		case "price_approved_by_seller":
			item.PriceApprovedBySeller = v.(bool)
		case "approved_price":
			item.ApprovedPrice, _ = v.(*float64)
		case "min_price":
			item.MinPrice, _ = v.(*float64)
		case "max_price":
			item.MaxPrice, _ = v.(*float64)
		case "listed_at":
			t := v.(time.Time)
			item.ListedAt = &t
		case "platform_listed_on":
			item.PlatformListedOn, _ = v.(*string)
		}
	}
	return nil
}

func (f *fakeItemRepo) Sell(_ context.Context, id uint64, salePrice float64, soldAt time.Time, txn *model.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.Status = model.ItemStatusSold
	item.SalePrice = &salePrice
	item.SoldAt = &soldAt
	txn.ID = uint64(len(f.txns) + 1)
	f.txns = append(f.txns, *txn)
	return nil
}

func (f *fakeItemRepo) filter(keep func(*model.Item) bool) []model.Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Item
	for _, i := range f.items {
		if keep(i) {
			out = append(out, *i)
		}
	}
	return out
}

type fakeMeetingRepo struct {
	mu       sync.Mutex
	meetings map[uint64]*model.Meeting
	nextID   uint64
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{meetings: map[uint64]*model.Meeting{}}
}

func (f *fakeMeetingRepo) Create(_ context.Context, m *model.Meeting) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	m.ID = f.nextID
	cp := *m
	f.meetings[m.ID] = &cp
	return nil
}

func (f *fakeMeetingRepo) FindByID(_ context.Context, id uint64) (*model.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.meetings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMeetingRepo) ListByRequest(_ context.Context, requestID uint64) ([]model.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Meeting
	for _, m := range f.meetings {
		if m.RequestID == requestID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMeetingRepo) ListByRequestIDs(_ context.Context, requestIDs []uint64) ([]model.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := map[uint64]bool{}
	for _, id := range requestIDs {
		wanted[id] = true
	}
	var out []model.Meeting
	for _, m := range f.meetings {
		if wanted[m.RequestID] {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMeetingRepo) Update(_ context.Context, id uint64, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.meetings[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range updates {
		switch k {
		case "status":
			m.Status = v.(model.MeetingStatus)
		case "scheduled_date":
			m.ScheduledDate = v.(time.Time)
		case "location":
			m.Location = v.(string)
		case "notes":
			s := v.(string)
			m.Notes = &s
		}
	}
	return nil
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []model.Message
	nextID   uint64
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (f *fakeMessageRepo) Create(_ context.Context, msg *model.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	msg.ID = f.nextID
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeMessageRepo) ListByUser(_ context.Context, uid string) ([]model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Message
	// newest first, like the real query
	for i := len(f.messages) - 1; i >= 0; i-- {
		m := f.messages[i]
		if m.SenderID == uid || m.ReceiverID == uid {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) ListBetween(_ context.Context, uid, otherUID string) ([]model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Message
	for _, m := range f.messages {
		if (m.SenderID == uid && m.ReceiverID == otherUID) || (m.SenderID == otherUID && m.ReceiverID == uid) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) MarkReadBetween(_ context.Context, senderID, receiverID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.messages {
		m := &f.messages[i]
		if m.SenderID == senderID && m.ReceiverID == receiverID {
			m.IsRead = true
		}
	}
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []model.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = uint64(len(f.notifications) + 1)
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeNotificationRepo) FindByID(_ context.Context, id uint64) (*model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.ID == id {
			cp := n
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID string) ([]model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if f.notifications[i].ID == id {
			f.notifications[i].IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) byType(typ string) []model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Notification
	for _, n := range f.notifications {
		if n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) Upsert(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) ListAll(_ context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

type fakeTransactionRepo struct {
	mu   sync.Mutex
	txns []model.Transaction
}

func newFakeTransactionRepo(txns ...model.Transaction) *fakeTransactionRepo {
	return &fakeTransactionRepo{txns: txns}
}

func (f *fakeTransactionRepo) ListBySeller(_ context.Context, sellerID string) ([]model.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Transaction
	for _, t := range f.txns {
		if t.SellerID == sellerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTransactionRepo) ListByReusse(_ context.Context, reusseID string) ([]model.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Transaction
	for _, t := range f.txns {
		if t.ReusseID == reusseID {
			out = append(out, t)
		}
	}
	return out, nil
}
