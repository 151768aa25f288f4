package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// memDB is an in-memory stand-in for the database. Rows are stored by value
// so callers only see writes made through repository methods.
type memDB struct {
	mu        sync.Mutex
	projects  map[uuid.UUID]model.Project
	pos       map[uuid.UUID]model.PurchaseOrder
	invoices  map[uuid.UUID]model.Invoice
	issued    map[uuid.UUID]model.IssuedPO
	received  map[uuid.UUID]model.ReceivedInvoice
	companies map[uuid.UUID]model.Company
	users     map[uuid.UUID]model.User
	audits    []model.AuditLog
	settings  *model.CompanySettings
	rolePerms map[string][]string
	permCalls int
}

func newMemDB() *memDB {
	return &memDB{
		projects:  map[uuid.UUID]model.Project{},
		pos:       map[uuid.UUID]model.PurchaseOrder{},
		invoices:  map[uuid.UUID]model.Invoice{},
		issued:    map[uuid.UUID]model.IssuedPO{},
		received:  map[uuid.UUID]model.ReceivedInvoice{},
		companies: map[uuid.UUID]model.Company{},
		users:     map[uuid.UUID]model.User{},
		rolePerms: map[string][]string{},
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type memSnapshot struct {
	projects  map[uuid.UUID]model.Project
	pos       map[uuid.UUID]model.PurchaseOrder
	invoices  map[uuid.UUID]model.Invoice
	issued    map[uuid.UUID]model.IssuedPO
	received  map[uuid.UUID]model.ReceivedInvoice
	companies map[uuid.UUID]model.Company
	audits    []model.AuditLog
	settings  *model.CompanySettings
}

func (db *memDB) snapshot() memSnapshot {
	db.mu.Lock()
	defer db.mu.Unlock()
	snap := memSnapshot{
		projects:  copyMap(db.projects),
		pos:       copyMap(db.pos),
		invoices:  copyMap(db.invoices),
		issued:    copyMap(db.issued),
		received:  copyMap(db.received),
		companies: copyMap(db.companies),
		audits:    append([]model.AuditLog(nil), db.audits...),
	}
	if db.settings != nil {
		s := *db.settings
		snap.settings = &s
	}
	return snap
}

func (db *memDB) restore(snap memSnapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.projects = snap.projects
	db.pos = snap.pos
	db.invoices = snap.invoices
	db.issued = snap.issued
	db.received = snap.received
	db.companies = snap.companies
	db.audits = snap.audits
	db.settings = snap.settings
}

// --- Transaction manager ---

type memTxKey struct{}

// memTxManager restores the pre-transaction snapshot when fn fails.
type memTxManager struct {
	db *memDB
}

func (m *memTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	if ctx.Value(memTxKey{}) != nil {
		return fn(ctx)
	}
	snap := m.db.snapshot()
	if err := fn(context.WithValue(ctx, memTxKey{}, true)); err != nil {
		m.db.restore(snap)
		return err
	}
	return nil
}

func stamp(id *uuid.UUID, created, updated *time.Time) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	now := time.Now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

// --- Projects ---

type memProjectRepo struct{ db *memDB }

func (r *memProjectRepo) Create(_ context.Context, p *model.Project) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.projects {
		if existing.Code == p.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	r.db.projects[p.ID] = *p
	return nil
}

func (r *memProjectRepo) Update(_ context.Context, p *model.Project) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p.UpdatedAt = time.Now()
	updated := *p
	if stored, ok := r.db.projects[p.ID]; ok {
		updated.LastInvoiceSequence = stored.LastInvoiceSequence
	}
	r.db.projects[p.ID] = updated
	return nil
}

func (r *memProjectRepo) SetLastInvoiceSequence(_ context.Context, id uuid.UUID, sequence int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.projects[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.LastInvoiceSequence = sequence
	r.db.projects[id] = p
	return nil
}

func (r *memProjectRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.projects, id)
	return nil
}

func (r *memProjectRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Project, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *memProjectRepo) FindByCode(_ context.Context, code string) (*model.Project, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.projects {
		if p.Code == code {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memProjectRepo) FindByCodeForUpdate(ctx context.Context, code string) (*model.Project, error) {
	return r.FindByCode(ctx, code)
}

func (r *memProjectRepo) List(_ context.Context, filter repository.ProjectListFilter) ([]model.Project, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.Project
	for _, p := range r.db.projects {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(p.Code, filter.Search) && !strings.Contains(p.Title, filter.Search) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code > out[j].Code })
	return out, int64(len(out)), nil
}

func (r *memProjectRepo) ListRootCodesWithPrefix(_ context.Context, prefix string) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var codes []string
	for _, p := range r.db.projects {
		if p.ParentProjectID == nil && strings.HasPrefix(p.Code, prefix) {
			codes = append(codes, p.Code)
		}
	}
	return codes, nil
}

func (r *memProjectRepo) MaxVONumber(_ context.Context, parentID uuid.UUID) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	max := 0
	for _, p := range r.db.projects {
		if p.ParentProjectID != nil && *p.ParentProjectID == parentID && p.VONumber != nil && *p.VONumber > max {
			max = *p.VONumber
		}
	}
	return max, nil
}

// --- Purchase orders ---

type memPORepo struct{ db *memDB }

// checkUnique mirrors the unique indexes on po_number and the partial index
// on active rows per base. Caller holds the lock.
func (r *memPORepo) checkUnique(po *model.PurchaseOrder) error {
	for id, other := range r.db.pos {
		if id == po.ID {
			continue
		}
		if other.PONumber == po.PONumber {
			return gorm.ErrDuplicatedKey
		}
		if other.PONumberBase == po.PONumberBase && other.RevisionNumber == po.RevisionNumber {
			return gorm.ErrDuplicatedKey
		}
		if po.IsActive && other.IsActive && other.PONumberBase == po.PONumberBase {
			return gorm.ErrDuplicatedKey
		}
	}
	return nil
}

func (r *memPORepo) Create(_ context.Context, po *model.PurchaseOrder) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.checkUnique(po); err != nil {
		return err
	}
	stamp(&po.ID, &po.CreatedAt, &po.UpdatedAt)
	r.db.pos[po.ID] = *po
	return nil
}

func (r *memPORepo) Update(_ context.Context, po *model.PurchaseOrder) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.checkUnique(po); err != nil {
		return err
	}
	po.UpdatedAt = time.Now()
	r.db.pos[po.ID] = *po
	return nil
}

func (r *memPORepo) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.pos, id)
	return nil
}

func (r *memPORepo) FindByID(_ context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	po, ok := r.db.pos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &po, nil
}

func (r *memPORepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	return r.FindByID(ctx, id)
}

func (r *memPORepo) ExistsByNumber(_ context.Context, poNumber string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, po := range r.db.pos {
		if po.PONumber == poNumber || po.PONumberBase == poNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *memPORepo) ListByBase(_ context.Context, base string) ([]model.PurchaseOrder, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.PurchaseOrder
	for _, po := range r.db.pos {
		if po.PONumberBase == base {
			out = append(out, po)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RevisionNumber < out[j].RevisionNumber })
	return out, nil
}

func (r *memPORepo) FindActiveByBase(_ context.Context, base string) (*model.PurchaseOrder, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, po := range r.db.pos {
		if po.PONumberBase == base && po.IsActive {
			return &po, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memPORepo) List(_ context.Context, filter repository.PurchaseOrderListFilter) ([]model.PurchaseOrder, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.PurchaseOrder
	for _, po := range r.db.pos {
		if filter.ProjectCode != "" && po.ProjectCode != filter.ProjectCode {
			continue
		}
		if filter.Status != "" && po.Status != filter.Status {
			continue
		}
		if filter.ActiveOnly && !po.IsActive {
			continue
		}
		out = append(out, po)
	}
	return out, int64(len(out)), nil
}

func (r *memPORepo) ListByProject(_ context.Context, projectCode string) ([]model.PurchaseOrder, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.PurchaseOrder
	for _, po := range r.db.pos {
		if po.ProjectCode == projectCode {
			out = append(out, po)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PONumberBase != out[j].PONumberBase {
			return out[i].PONumberBase < out[j].PONumberBase
		}
		return out[i].RevisionNumber < out[j].RevisionNumber
	})
	return out, nil
}

func (r *memPORepo) StatsByProject(_ context.Context, projectCode string) (repository.ProjectPOStats, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var stats repository.ProjectPOStats
	for _, po := range r.db.pos {
		if po.ProjectCode != projectCode || !po.IsActive {
			continue
		}
		stats.ActiveCount++
		if stats.EarliestReceived == nil || po.ReceivedDate.Before(*stats.EarliestReceived) {
			received := po.ReceivedDate
			stats.EarliestReceived = &received
		}
	}
	return stats, nil
}

// --- Invoices ---

type memInvoiceRepo struct{ db *memDB }

func (r *memInvoiceRepo) checkUnique(inv *model.Invoice) error {
	for id, other := range r.db.invoices {
		if id == inv.ID {
			continue
		}
		if other.InvoiceNumber == inv.InvoiceNumber {
			return repository.ErrDuplicateInvoiceNumber
		}
		if other.ProjectCode == inv.ProjectCode && other.InvoiceSequence == inv.InvoiceSequence {
			return repository.ErrDuplicateInvoiceSequence
		}
	}
	return nil
}

func (r *memInvoiceRepo) Create(_ context.Context, inv *model.Invoice) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.checkUnique(inv); err != nil {
		return err
	}
	stamp(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	links := make([]model.InvoiceProject, len(inv.Projects))
	for i, l := range inv.Projects {
		l.InvoiceID = inv.ID
		links[i] = l
	}
	inv.Projects = links
	r.db.invoices[inv.ID] = *inv
	return nil
}

func (r *memInvoiceRepo) Update(_ context.Context, inv *model.Invoice) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.checkUnique(inv); err != nil {
		return err
	}
	stored, ok := r.db.invoices[inv.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	inv.UpdatedAt = time.Now()
	updated := *inv
	updated.Projects = stored.Projects
	r.db.invoices[inv.ID] = updated
	return nil
}

func (r *memInvoiceRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.invoices, id)
	return nil
}

func (r *memInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	inv, ok := r.db.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &inv, nil
}

func (r *memInvoiceRepo) ExistsByNumber(_ context.Context, number string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, inv := range r.db.invoices {
		if inv.InvoiceNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *memInvoiceRepo) ListBySequence(_ context.Context, projectCode string) ([]model.Invoice, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.Invoice
	for _, inv := range r.db.invoices {
		if inv.ProjectCode == projectCode {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InvoiceSequence < out[j].InvoiceSequence })
	return out, nil
}

func (r *memInvoiceRepo) List(_ context.Context, filter repository.InvoiceListFilter) ([]model.Invoice, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.Invoice
	for _, inv := range r.db.invoices {
		if filter.Status != "" && inv.Status != filter.Status {
			continue
		}
		if filter.ProjectCode != "" {
			linked := false
			for _, code := range inv.ProjectCodes() {
				if code == filter.ProjectCode {
					linked = true
				}
			}
			if !linked {
				continue
			}
		}
		out = append(out, inv)
	}
	return out, int64(len(out)), nil
}

func (r *memInvoiceRepo) MaxNumberSuffix(_ context.Context, prefix string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	last := 0
	for _, inv := range r.db.invoices {
		suffix, ok := strings.CutPrefix(inv.InvoiceNumber, prefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(suffix); err == nil && n > last {
			last = n
		}
	}
	return last, nil
}

func (r *memInvoiceRepo) CountByProject(_ context.Context, projectCode string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for _, inv := range r.db.invoices {
		for _, code := range inv.ProjectCodes() {
			if code == projectCode {
				n++
			}
		}
	}
	return n, nil
}

// --- Vendor side ---

type memIssuedRepo struct{ db *memDB }

func (r *memIssuedRepo) Create(_ context.Context, po *model.IssuedPO) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, other := range r.db.issued {
		if other.PONumber == po.PONumber {
			return gorm.ErrDuplicatedKey
		}
	}
	stamp(&po.ID, &po.CreatedAt, &po.UpdatedAt)
	r.db.issued[po.ID] = *po
	return nil
}

func (r *memIssuedRepo) Update(_ context.Context, po *model.IssuedPO) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.issued[po.ID] = *po
	return nil
}

func (r *memIssuedRepo) FindByID(_ context.Context, id uuid.UUID) (*model.IssuedPO, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	po, ok := r.db.issued[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &po, nil
}

func (r *memIssuedRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.IssuedPO, error) {
	return r.FindByID(ctx, id)
}

func (r *memIssuedRepo) List(_ context.Context, projectCode, status string, _, _ int) ([]model.IssuedPO, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.IssuedPO
	for _, po := range r.db.issued {
		if (projectCode == "" || po.ProjectCode == projectCode) && (status == "" || po.Status == status) {
			out = append(out, po)
		}
	}
	return out, int64(len(out)), nil
}

type memReceivedRepo struct{ db *memDB }

func (r *memReceivedRepo) Create(_ context.Context, inv *model.ReceivedInvoice) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stamp(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	stored := *inv
	stored.IssuedPO = nil
	r.db.received[inv.ID] = stored
	return nil
}

func (r *memReceivedRepo) Update(_ context.Context, inv *model.ReceivedInvoice) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stored := *inv
	stored.IssuedPO = nil
	r.db.received[inv.ID] = stored
	return nil
}

func (r *memReceivedRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ReceivedInvoice, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	inv, ok := r.db.received[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &inv, nil
}

func (r *memReceivedRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.ReceivedInvoice, error) {
	return r.FindByID(ctx, id)
}

func (r *memReceivedRepo) List(_ context.Context, issuedPOID *uuid.UUID, status string, _, _ int) ([]model.ReceivedInvoice, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.ReceivedInvoice
	for _, inv := range r.db.received {
		if (issuedPOID == nil || inv.IssuedPOID == *issuedPOID) && (status == "" || inv.Status == status) {
			out = append(out, inv)
		}
	}
	return out, int64(len(out)), nil
}

// --- CRM, users, settings, audit, roles ---

type memCompanyRepo struct{ db *memDB }

func (r *memCompanyRepo) Create(_ context.Context, c *model.Company) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, other := range r.db.companies {
		if other.Name == c.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	stamp(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	for i := range c.Contacts {
		c.Contacts[i].ID = uuid.New()
		c.Contacts[i].CompanyID = c.ID
	}
	r.db.companies[c.ID] = *c
	return nil
}

func (r *memCompanyRepo) Update(_ context.Context, c *model.Company) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for id, other := range r.db.companies {
		if id != c.ID && other.Name == c.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	stored := *c
	stored.Contacts = r.db.companies[c.ID].Contacts
	r.db.companies[c.ID] = stored
	return nil
}

func (r *memCompanyRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.companies, id)
	return nil
}

func (r *memCompanyRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Company, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.companies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *memCompanyRepo) List(_ context.Context, companyType, search string, _, _ int) ([]model.Company, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.Company
	for _, c := range r.db.companies {
		if companyType != "" && c.Type != companyType && c.Type != model.CompanyTypeBoth {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *memCompanyRepo) ReplaceContacts(_ context.Context, companyID uuid.UUID, contacts []model.Contact) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c := r.db.companies[companyID]
	for i := range contacts {
		contacts[i].ID = uuid.New()
		contacts[i].CompanyID = companyID
	}
	c.Contacts = contacts
	r.db.companies[companyID] = c
	return nil
}

type memUserRepo struct{ db *memDB }

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *memUserRepo) List(_ context.Context, role string, _, _ int) ([]model.User, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.User
	for _, u := range r.db.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

type memSettingsRepo struct {
	db    *memDB
	loads int
}

func (r *memSettingsRepo) Get(_ context.Context) (*model.CompanySettings, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.loads++
	if r.db.settings == nil {
		r.db.settings = &model.CompanySettings{ID: model.CompanySettingsID, InvoicePrefix: "INV"}
	}
	s := *r.db.settings
	return &s, nil
}

func (r *memSettingsRepo) Save(_ context.Context, s *model.CompanySettings) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stored := *s
	r.db.settings = &stored
	return nil
}

type memAuditRepo struct{ db *memDB }

func (r *memAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	r.db.audits = append(r.db.audits, *entry)
	return nil
}

func (r *memAuditRepo) List(_ context.Context, filter repository.AuditListFilter) ([]model.AuditLog, int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []model.AuditLog
	for i := len(r.db.audits) - 1; i >= 0; i-- {
		a := r.db.audits[i]
		if filter.Action != "" && a.Action != filter.Action {
			continue
		}
		if filter.EntityID != "" && a.EntityID != filter.EntityID {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

type memRoleRepo struct{ db *memDB }

func (r *memRoleRepo) GetPermissionsByRoleName(_ context.Context, roleName string) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.permCalls++
	return append([]string(nil), r.db.rolePerms[roleName]...), nil
}

func (r *memRoleRepo) FindOrCreatePermission(_ context.Context, perm *model.Permission) error {
	if perm.ID == uuid.Nil {
		perm.ID = uuid.New()
	}
	return nil
}

func (r *memRoleRepo) EnsureRole(_ context.Context, role *model.Role, perms []model.Permission) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	existing := r.db.rolePerms[role.Name]
	seen := map[string]bool{}
	for _, code := range existing {
		seen[code] = true
	}
	for _, p := range perms {
		if !seen[p.Code] {
			existing = append(existing, p.Code)
			seen[p.Code] = true
		}
	}
	r.db.rolePerms[role.Name] = existing
	return nil
}

// --- Collaborators ---

// fakeRates is a RateProvider returning fixed rates per currency.
type fakeRates struct {
	mu    sync.Mutex
	rates map[string]decimal.Decimal
	err   error
	calls int
}

func (f *fakeRates) FetchRate(_ context.Context, from, _ string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return decimal.Zero, f.err
	}
	rate, ok := f.rates[from]
	if !ok {
		return decimal.Zero, gorm.ErrRecordNotFound
	}
	return rate, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (n *recordingNotifier) Publish(e Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *recordingNotifier) types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Type)
	}
	return out
}
