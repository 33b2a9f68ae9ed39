package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hostelbooks/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// AccountModel is the persistence model for ledger accounts
type AccountModel struct {
	BaseModel
	Name              string           `gorm:"type:varchar(200);not null;uniqueIndex"`
	AccountType       string           `gorm:"type:varchar(20);not null;index"`
	CategoryID        *uuid.UUID       `gorm:"type:uuid;index"`
	GSTType           string           `gorm:"type:varchar(20)"`
	GSTRate           *decimal.Decimal `gorm:"type:decimal(5,2)"`
	Balance           decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	MaintainsBillWise bool             `gorm:"not null;default:false"`
	IsCashEquivalent  bool             `gorm:"not null;default:false"`
	Active            bool             `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account
func (m *AccountModel) ToDomain() *ledger.Account {
	return &ledger.Account{
		BaseEntity:        m.BaseModel.ToDomain(),
		Name:              m.Name,
		Type:              ledger.AccountType(m.AccountType),
		CategoryID:        m.CategoryID,
		GSTType:           ledger.GSTClass(m.GSTType),
		GSTRate:           m.GSTRate,
		Balance:           m.Balance,
		MaintainsBillWise: m.MaintainsBillWise,
		IsCashEquivalent:  m.IsCashEquivalent,
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain Account
func (m *AccountModel) FromDomain(a *ledger.Account) {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.Name = a.Name
	m.AccountType = string(a.Type)
	m.CategoryID = a.CategoryID
	m.GSTType = string(a.GSTType)
	m.GSTRate = a.GSTRate
	m.Balance = a.Balance
	m.MaintainsBillWise = a.MaintainsBillWise
	m.IsCashEquivalent = a.IsCashEquivalent
	m.Active = a.Active
}

// AccountCategoryModel is the persistence model for account categories
type AccountCategoryModel struct {
	BaseModel
	Name        string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	AccountType string     `gorm:"type:varchar(20);not null;index"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (AccountCategoryModel) TableName() string {
	return "account_categories"
}

// ToDomain converts the persistence model to a domain AccountCategory
func (m *AccountCategoryModel) ToDomain() *ledger.AccountCategory {
	return &ledger.AccountCategory{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Type:       ledger.AccountType(m.AccountType),
		ParentID:   m.ParentID,
	}
}

// FromDomain populates the persistence model from a domain AccountCategory
func (m *AccountCategoryModel) FromDomain(c *ledger.AccountCategory) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.AccountType = string(c.Type)
	m.ParentID = c.ParentID
}

// AccountSettingModel is the persistence model for system-name mappings
type AccountSettingModel struct {
	BaseModel
	SystemName  string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	AccountID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Description string    `gorm:"type:varchar(500)"`
	UpdatedBy   string    `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (AccountSettingModel) TableName() string {
	return "account_settings"
}

// ToDomain converts the persistence model to a domain AccountSetting
func (m *AccountSettingModel) ToDomain() *ledger.AccountSetting {
	return &ledger.AccountSetting{
		BaseEntity:  m.BaseModel.ToDomain(),
		SystemName:  ledger.SystemName(m.SystemName),
		AccountID:   m.AccountID,
		Description: m.Description,
		UpdatedBy:   m.UpdatedBy,
	}
}

// FromDomain populates the persistence model from a domain AccountSetting
func (m *AccountSettingModel) FromDomain(s *ledger.AccountSetting) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.SystemName = string(s.SystemName)
	m.AccountID = s.AccountID
	m.Description = s.Description
	m.UpdatedBy = s.UpdatedBy
}

// JournalEntryModel is the persistence model for journal entries
type JournalEntryModel struct {
	BaseModel
	Date          time.Time              `gorm:"not null;index"`
	Description   string                 `gorm:"type:text;not null"`
	PropertyID    *uuid.UUID             `gorm:"type:uuid;index"`
	KitchenID     *uuid.UUID             `gorm:"type:uuid"`
	ReferenceID   string                 `gorm:"type:varchar(100);index"`
	ReferenceType string                 `gorm:"type:varchar(50);index"`
	PerformedBy   string                 `gorm:"type:varchar(100)"`
	IsReconciled  bool                   `gorm:"not null;default:false;index"`
	BankDate      *time.Time             `gorm:""`
	Lines         []TransactionLineModel `gorm:"foreignKey:JournalEntryID;references:ID"`
}

// TableName returns the table name for GORM
func (JournalEntryModel) TableName() string {
	return "journal_entries"
}

// ToDomain converts the persistence model to a domain JournalEntry
func (m *JournalEntryModel) ToDomain() *ledger.JournalEntry {
	lines := make([]ledger.TransactionLine, 0, len(m.Lines))
	for i := range m.Lines {
		lines = append(lines, m.Lines[i].ToDomain())
	}
	return &ledger.JournalEntry{
		BaseEntity:    m.BaseModel.ToDomain(),
		Date:          m.Date,
		Description:   m.Description,
		PropertyID:    m.PropertyID,
		KitchenID:     m.KitchenID,
		ReferenceID:   m.ReferenceID,
		ReferenceType: m.ReferenceType,
		PerformedBy:   m.PerformedBy,
		Lines:         lines,
		BankReconciliation: ledger.BankReconciliation{
			IsReconciled: m.IsReconciled,
			BankDate:     m.BankDate,
		},
	}
}

// FromDomain populates the persistence model from a domain JournalEntry
func (m *JournalEntryModel) FromDomain(e *ledger.JournalEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Date = e.Date
	m.Description = e.Description
	m.PropertyID = e.PropertyID
	m.KitchenID = e.KitchenID
	m.ReferenceID = e.ReferenceID
	m.ReferenceType = e.ReferenceType
	m.PerformedBy = e.PerformedBy
	m.IsReconciled = e.BankReconciliation.IsReconciled
	m.BankDate = e.BankReconciliation.BankDate
	m.Lines = make([]TransactionLineModel, 0, len(e.Lines))
	for i := range e.Lines {
		var line TransactionLineModel
		line.FromDomain(e.Lines[i], e.ID)
		m.Lines = append(m.Lines, line)
	}
}

// TransactionLineModel is the persistence model for one leg of a journal entry
type TransactionLineModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	JournalEntryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountName    string          `gorm:"type:varchar(200);not null"`
	Debit          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Credit         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	BillRefKind    *string         `gorm:"type:varchar(20)"`
	BillRefNo      string          `gorm:"type:varchar(100);index"`
}

// TableName returns the table name for GORM
func (TransactionLineModel) TableName() string {
	return "transaction_lines"
}

// ToDomain converts the persistence model to a domain TransactionLine
func (m *TransactionLineModel) ToDomain() ledger.TransactionLine {
	line := ledger.TransactionLine{
		ID:          m.ID,
		AccountID:   m.AccountID,
		AccountName: m.AccountName,
		Debit:       m.Debit,
		Credit:      m.Credit,
		BillRefNo:   m.BillRefNo,
	}
	if m.BillRefKind != nil {
		kind := ledger.BillRefKind(*m.BillRefKind)
		line.BillRefKind = &kind
	}
	return line
}

// FromDomain populates the persistence model from a domain TransactionLine
func (m *TransactionLineModel) FromDomain(line ledger.TransactionLine, entryID uuid.UUID) {
	m.ID = line.ID
	m.JournalEntryID = entryID
	m.AccountID = line.AccountID
	m.AccountName = line.AccountName
	m.Debit = line.Debit
	m.Credit = line.Credit
	m.BillRefNo = line.BillRefNo
	if line.BillRefKind != nil {
		kind := string(*line.BillRefKind)
		m.BillRefKind = &kind
	}
}

// BillLedgerModel is the persistence model for the bill-wise sub-ledger
type BillLedgerModel struct {
	BaseModel
	AccountID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_bill_account_ref,priority:1"`
	JournalEntryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	PropertyID     *uuid.UUID      `gorm:"type:uuid;index"`
	BillRefNo      string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_bill_account_ref,priority:2"`
	BillDate       time.Time       `gorm:"not null"`
	DueDate        *time.Time      `gorm:"index"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PendingAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status         string          `gorm:"type:varchar(20);not null;default:'PENDING';index"`
}

// TableName returns the table name for GORM
func (BillLedgerModel) TableName() string {
	return "bill_ledgers"
}

// ToDomain converts the persistence model to a domain BillLedger
func (m *BillLedgerModel) ToDomain() *ledger.BillLedger {
	return &ledger.BillLedger{
		BaseEntity:     m.BaseModel.ToDomain(),
		AccountID:      m.AccountID,
		JournalEntryID: m.JournalEntryID,
		PropertyID:     m.PropertyID,
		BillRefNo:      m.BillRefNo,
		BillDate:       m.BillDate,
		DueDate:        m.DueDate,
		TotalAmount:    m.TotalAmount,
		PendingAmount:  m.PendingAmount,
		Status:         ledger.BillStatus(m.Status),
	}
}

// FromDomain populates the persistence model from a domain BillLedger
func (m *BillLedgerModel) FromDomain(b *ledger.BillLedger) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.AccountID = b.AccountID
	m.JournalEntryID = b.JournalEntryID
	m.PropertyID = b.PropertyID
	m.BillRefNo = b.BillRefNo
	m.BillDate = b.BillDate
	m.DueDate = b.DueDate
	m.TotalAmount = b.TotalAmount
	m.PendingAmount = b.PendingAmount
	m.Status = string(b.Status)
}
