package service

import (
	"errors"
	"time"

	"rankboost/internal/domain"
	"rankboost/internal/models"

	"gorm.io/gorm"
)

// In-memory stand-ins for the repository layer. They copy values in and out
// so service mutations only stick through explicit Update calls, matching
// how the real stores behave.

type fakeOrderStore struct {
	seq    uint
	orders map[uint]*models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[uint]*models.Order{}}
}

func (f *fakeOrderStore) CreateIfNoActive(o *models.Order) error {
	for _, ex := range f.orders {
		if ex.ClientID != o.ClientID || ex.GameMode != o.GameMode {
			continue
		}
		for _, st := range domain.ActiveOrderStatuses {
			if ex.Status == st {
				return domain.ErrDuplicateOrder
			}
		}
	}
	f.seq++
	o.ID = f.seq
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderStore) GetByID(id uint) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderStore) Update(o *models.Order) error {
	if _, ok := f.orders[o.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderStore) Assign(orderID, boosterID uint, at time.Time) (int64, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return 0, nil
	}
	if o.BoosterID != nil {
		return 0, nil
	}
	if o.Status != domain.OrderStatusPending && o.Status != domain.OrderStatusPaid {
		return 0, nil
	}
	b := boosterID
	o.BoosterID = &b
	o.Status = domain.OrderStatusInProgress
	o.AcceptedAt = &at
	return 1, nil
}

func (f *fakeOrderStore) ListByClient(clientID uint, limit, offset int) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.ClientID == clientID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) ListByBooster(boosterID uint, limit, offset int) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.BoosterID != nil && *o.BoosterID == boosterID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) ListAvailable(limit, offset int) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.BoosterID == nil && (o.Status == domain.OrderStatusPending || o.Status == domain.OrderStatusPaid) {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) CountActiveByClient(clientID uint) (int64, error) {
	var n int64
	for _, o := range f.orders {
		if o.ClientID != clientID {
			continue
		}
		for _, st := range domain.ActiveOrderStatuses {
			if o.Status == st {
				n++
			}
		}
	}
	return n, nil
}

func (f *fakeOrderStore) CountActiveByBooster(boosterID uint) (int64, error) {
	var n int64
	for _, o := range f.orders {
		if o.BoosterID == nil || *o.BoosterID != boosterID {
			continue
		}
		for _, st := range domain.ActiveOrderStatuses {
			if o.Status == st {
				n++
			}
		}
	}
	return n, nil
}

type fakePaymentStore struct {
	seq      uint
	payments []*models.Payment
}

func (f *fakePaymentStore) Create(p *models.Payment) error {
	f.seq++
	p.ID = f.seq
	cp := *p
	f.payments = append(f.payments, &cp)
	return nil
}

func (f *fakePaymentStore) HasPaid(orderID uint) (bool, error) {
	for _, p := range f.payments {
		if p.OrderID == orderID && p.Status == domain.PaymentStatusPaid {
			return true, nil
		}
	}
	return false, nil
}

type fakeBoosterStore struct {
	seq      uint
	profiles map[uint]*models.BoosterProfile // keyed by profile ID
}

func newFakeBoosterStore() *fakeBoosterStore {
	return &fakeBoosterStore{profiles: map[uint]*models.BoosterProfile{}}
}

func (f *fakeBoosterStore) Create(p *models.BoosterProfile) error {
	f.seq++
	p.ID = f.seq
	cp := *p
	f.profiles[p.ID] = &cp
	return nil
}

func (f *fakeBoosterStore) GetByUserID(userID uint) (*models.BoosterProfile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBoosterStore) GetByID(id uint) (*models.BoosterProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeBoosterStore) Update(p *models.BoosterProfile) error {
	if _, ok := f.profiles[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	f.profiles[p.ID] = &cp
	return nil
}

func (f *fakeBoosterStore) ListPending(limit, offset int) ([]models.BoosterProfile, error) {
	var out []models.BoosterProfile
	for _, p := range f.profiles {
		if p.VerificationStatus == domain.BoosterStatusPending {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeBoosterStore) Approve(p *models.BoosterProfile) error {
	return f.Update(p)
}

type fakeCommissionStore struct {
	configs     []*models.CommissionConfig
	commissions map[uint]*models.BoosterCommission // keyed by order ID
	revenues    map[uint][]*models.AdminRevenue
}

func newFakeCommissionStore(boosterPct, adminPct float64) *fakeCommissionStore {
	return &fakeCommissionStore{
		configs: []*models.CommissionConfig{
			{ID: 1, BoosterPercentage: boosterPct, AdminPercentage: adminPct, Enabled: true},
		},
		commissions: map[uint]*models.BoosterCommission{},
		revenues:    map[uint][]*models.AdminRevenue{},
	}
}

func (f *fakeCommissionStore) GetEnabledConfig() (*models.CommissionConfig, error) {
	for _, c := range f.configs {
		if c.Enabled {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCommissionStore) RotateConfig(cfg *models.CommissionConfig) error {
	for _, c := range f.configs {
		c.Enabled = false
	}
	cfg.ID = uint(len(f.configs) + 1)
	cfg.Enabled = true
	cp := *cfg
	f.configs = append(f.configs, &cp)
	return nil
}

func (f *fakeCommissionStore) ListConfigHistory(limit int) ([]models.CommissionConfig, error) {
	var out []models.CommissionConfig
	for i := len(f.configs) - 1; i >= 0; i-- {
		out = append(out, *f.configs[i])
	}
	return out, nil
}

func (f *fakeCommissionStore) CreateSplit(comm *models.BoosterCommission, revenues []*models.AdminRevenue) error {
	cp := *comm
	f.commissions[comm.OrderID] = &cp
	for _, r := range revenues {
		rc := *r
		f.revenues[r.OrderID] = append(f.revenues[r.OrderID], &rc)
	}
	return nil
}

func (f *fakeCommissionStore) GetByOrderID(orderID uint) (*models.BoosterCommission, error) {
	c, ok := f.commissions[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommissionStore) ListByBooster(boosterID uint, limit, offset int) ([]models.BoosterCommission, error) {
	var out []models.BoosterCommission
	for _, c := range f.commissions {
		if c.BoosterID == boosterID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCommissionStore) ListRevenueByOrder(orderID uint) ([]models.AdminRevenue, error) {
	var out []models.AdminRevenue
	for _, r := range f.revenues[orderID] {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeCommissionStore) MarkPaid(orderID uint, at time.Time) error {
	c, ok := f.commissions[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Status = domain.CommissionStatusPaid
	c.PaidAt = &at
	for _, r := range f.revenues[orderID] {
		r.Status = domain.CommissionStatusPaid
		r.PaidAt = &at
	}
	return nil
}

type fakeAdminLister struct {
	admins []models.User
}

func (f *fakeAdminLister) ListActiveAdmins() ([]models.User, error) {
	return f.admins, nil
}

type sentNotification struct {
	UserID uint
	Type   string
}

type fakeNotifier struct {
	sent []sentNotification
}

func (f *fakeNotifier) Notify(userID uint, notifType, title, body string, data map[string]interface{}) error {
	f.sent = append(f.sent, sentNotification{UserID: userID, Type: notifType})
	return nil
}

type failingNotifier struct{}

func (failingNotifier) Notify(uint, string, string, string, map[string]interface{}) error {
	return errors.New("push backend down")
}

type fakePricingStore struct {
	seq      uint
	brackets []*models.PricingConfig
}

func (f *fakePricingStore) ListEnabled(game, gameMode string) ([]models.PricingConfig, error) {
	var out []models.PricingConfig
	for _, b := range f.brackets {
		if b.Enabled && b.Game == game && b.GameMode == gameMode {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakePricingStore) List(game string) ([]models.PricingConfig, error) {
	var out []models.PricingConfig
	for _, b := range f.brackets {
		if b.Game == game {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakePricingStore) CreateExclusive(p *models.PricingConfig) error {
	for _, b := range f.brackets {
		if !b.Enabled || b.Game != p.Game || b.GameMode != p.GameMode {
			continue
		}
		if b.RangeStart < p.RangeEnd && b.RangeEnd > p.RangeStart {
			return domain.ErrRangeOverlap
		}
	}
	f.seq++
	p.ID = f.seq
	cp := *p
	f.brackets = append(f.brackets, &cp)
	return nil
}

func (f *fakePricingStore) Disable(id uint) error {
	for _, b := range f.brackets {
		if b.ID == id {
			b.Enabled = false
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeUserStore struct {
	seq   uint
	users map[uint]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint]*models.User{}}
}

func (f *fakeUserStore) Create(u *models.User) error {
	f.seq++
	u.ID = f.seq
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserStore) GetByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) Update(u *models.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserStore) Anonymize(id uint) error {
	u, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Name = "Deleted user"
	u.Email = ""
	u.Active = false
	return nil
}

type fakeCodeStore struct {
	seq   uint
	codes []*models.VerificationCode
}

func (f *fakeCodeStore) Issue(code *models.VerificationCode) error {
	now := time.Now()
	for _, c := range f.codes {
		if c.UserID == code.UserID && c.Purpose == code.Purpose && c.UsedAt == nil {
			c.ExpiresAt = now
		}
	}
	f.seq++
	code.ID = f.seq
	cp := *code
	f.codes = append(f.codes, &cp)
	return nil
}

func (f *fakeCodeStore) FindLive(userID uint, code, purpose string) (*models.VerificationCode, error) {
	now := time.Now()
	for _, c := range f.codes {
		if c.UserID == userID && c.Code == code && c.Purpose == purpose &&
			c.UsedAt == nil && c.ExpiresAt.After(now) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCodeStore) MarkUsed(id uint) error {
	for _, c := range f.codes {
		if c.ID == id {
			now := time.Now()
			c.UsedAt = &now
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeCodeStore) latestFor(userID uint, purpose string) *models.VerificationCode {
	for i := len(f.codes) - 1; i >= 0; i-- {
		if f.codes[i].UserID == userID && f.codes[i].Purpose == purpose {
			cp := *f.codes[i]
			return &cp
		}
	}
	return nil
}

type fakeDisputeStore struct {
	seq      uint
	disputes map[uint]*models.Dispute
	messages []*models.DisputeMessage
}

func newFakeDisputeStore() *fakeDisputeStore {
	return &fakeDisputeStore{disputes: map[uint]*models.Dispute{}}
}

func (f *fakeDisputeStore) Create(d *models.Dispute) error {
	f.seq++
	d.ID = f.seq
	cp := *d
	f.disputes[d.ID] = &cp
	return nil
}

func (f *fakeDisputeStore) GetByID(id uint) (*models.Dispute, error) {
	d, ok := f.disputes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDisputeStore) Update(d *models.Dispute) error {
	if _, ok := f.disputes[d.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *d
	f.disputes[d.ID] = &cp
	return nil
}

func (f *fakeDisputeStore) CreateMessage(m *models.DisputeMessage) error {
	m.ID = uint(len(f.messages) + 1)
	cp := *m
	f.messages = append(f.messages, &cp)
	return nil
}

func (f *fakeDisputeStore) ListInvolving(userID uint, limit, offset int) ([]models.Dispute, error) {
	var out []models.Dispute
	for _, d := range f.disputes {
		if d.CreatorID == userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeDisputeStore) ListAll(status string, limit, offset int) ([]models.Dispute, error) {
	var out []models.Dispute
	for _, d := range f.disputes {
		if status == "" || d.Status == status {
			out = append(out, *d)
		}
	}
	return out, nil
}

type fakeReviewStore struct {
	seq     uint
	reviews map[uint]*models.Review // keyed by order ID
}

func newFakeReviewStore() *fakeReviewStore {
	return &fakeReviewStore{reviews: map[uint]*models.Review{}}
}

func (f *fakeReviewStore) Create(rev *models.Review) error {
	f.seq++
	rev.ID = f.seq
	cp := *rev
	f.reviews[rev.OrderID] = &cp
	return nil
}

func (f *fakeReviewStore) GetByOrderID(orderID uint) (*models.Review, error) {
	r, ok := f.reviews[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReviewStore) ListByBooster(boosterID uint, limit, offset int) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.BoosterID == boosterID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeSender struct {
	sent []string // recipient addresses
}

func (f *fakeSender) Send(to, subject, body string) error {
	f.sent = append(f.sent, to)
	return nil
}
