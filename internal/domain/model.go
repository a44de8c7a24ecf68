package domain

import "time"

// Model 所有表共用的主键与时间戳
type Model struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Model) GetID() uint   { return m.ID }
func (m *Model) SetID(id uint) { m.ID = id }

// ClearMeta 丢弃客户端传来的 id / 时间戳
func (m *Model) ClearMeta() { *m = Model{} }

// Company 客户公司
type Company struct {
	Model
	Name              string   `gorm:"size:191;not null;index" json:"name" binding:"required,max=191"`
	TaxID             string   `gorm:"column:tax_id;size:32;uniqueIndex;not null" json:"taxId" binding:"required,max=32"`
	Address           string   `gorm:"size:255" json:"address" binding:"max=255"`
	Phone             string   `gorm:"size:32" json:"phone" binding:"max=32"`
	Email             string   `gorm:"size:191" json:"email" binding:"omitempty,email"`
	SalesAdvisorID    *uint    `gorm:"index" json:"salesAdvisorId"`
	SalesAdvisor      *Advisor `gorm:"foreignKey:SalesAdvisorID" json:"salesAdvisor,omitempty" binding:"-"`
	PostSaleAdvisorID *uint    `gorm:"index" json:"postSaleAdvisorId"`
	PostSaleAdvisor   *Advisor `gorm:"foreignKey:PostSaleAdvisorID" json:"postSaleAdvisor,omitempty" binding:"-"`
}

func (Company) TableName() string { return "companies" }

// LegalRepresentative 法人代表（CUI 为自然键）
type LegalRepresentative struct {
	Model
	FirstName  string `gorm:"size:100;not null" json:"firstName" binding:"required,max=100"`
	LastName   string `gorm:"size:100;not null" json:"lastName" binding:"required,max=100"`
	CUI        string `gorm:"column:cui;size:20;uniqueIndex;not null" json:"cui" binding:"required,max=20"`
	BirthDate  *Date  `json:"birthDate"`
	Profession string `gorm:"size:100" json:"profession" binding:"max=100"`
	Phone      string `gorm:"size:32" json:"phone" binding:"max=32"`
	Email      string `gorm:"size:191" json:"email" binding:"omitempty,email"`
	Address    string `gorm:"size:255" json:"address" binding:"max=255"`
}

func (LegalRepresentative) TableName() string { return "legal_representatives" }

func (r LegalRepresentative) FullName() string {
	return r.FirstName + " " + r.LastName
}

// Telco 运营商
type Telco struct {
	Model
	Name         string `gorm:"size:100;uniqueIndex;not null" json:"name" binding:"required,max=100"`
	Website      string `gorm:"size:191" json:"website" binding:"max=191"`
	SupportPhone string `gorm:"size:32" json:"supportPhone" binding:"max=32"`
}

func (Telco) TableName() string { return "telcos" }

// Plan 套餐
type Plan struct {
	Model
	Name        string  `gorm:"size:100;not null" json:"name" binding:"required,max=100"`
	TelcoID     uint    `gorm:"not null;index" json:"telcoId" binding:"required"`
	Telco       *Telco  `json:"telco,omitempty" binding:"-"`
	MonthlyFee  float64 `gorm:"not null;default:0" json:"monthlyFee" binding:"gte=0"`
	DataGB      float64 `gorm:"column:data_gb;not null;default:0" json:"dataGb" binding:"gte=0"`
	Minutes     int     `gorm:"not null;default:0" json:"minutes" binding:"gte=0"`
	Description string  `gorm:"size:500" json:"description" binding:"max=500"`
}

func (Plan) TableName() string { return "plans" }

// AdvisorKind 顾问类型
type AdvisorKind string

const (
	AdvisorSales    AdvisorKind = "sales"
	AdvisorPostSale AdvisorKind = "post_sales"
)

// Advisor 运营商的销售 / 售后顾问
type Advisor struct {
	Model
	FullName string      `gorm:"size:191;not null" json:"fullName" binding:"required,max=191"`
	Kind     AdvisorKind `gorm:"size:16;not null;index" json:"kind" binding:"required,oneof=sales post_sales"`
	TelcoID  uint        `gorm:"not null;index" json:"telcoId" binding:"required"`
	Telco    *Telco      `json:"telco,omitempty" binding:"-"`
	Email    string      `gorm:"size:191" json:"email" binding:"omitempty,email"`
	Phone    string      `gorm:"size:32" json:"phone" binding:"max=32"`
}

func (Advisor) TableName() string { return "advisors" }

// Position 职位
type Position struct {
	Model
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name" binding:"required,max=100"`
}

func (Position) TableName() string { return "positions" }

// Employee 公司员工（线路使用人）
type Employee struct {
	Model
	FirstName  string    `gorm:"size:100;not null" json:"firstName" binding:"required,max=100"`
	LastName   string    `gorm:"size:100;not null" json:"lastName" binding:"required,max=100"`
	CUI        string    `gorm:"column:cui;size:20;index" json:"cui" binding:"max=20"`
	Email      string    `gorm:"size:191" json:"email" binding:"omitempty,email"`
	Phone      string    `gorm:"size:32" json:"phone" binding:"max=32"`
	CompanyID  uint      `gorm:"not null;index" json:"companyId" binding:"required"`
	Company    *Company  `json:"company,omitempty" binding:"-"`
	PositionID *uint     `gorm:"index" json:"positionId"`
	Position   *Position `json:"position,omitempty" binding:"-"`
}

func (Employee) TableName() string { return "employees" }

// LineStatus 线路状态
type LineStatus string

const (
	LineActive    LineStatus = "active"
	LineSuspended LineStatus = "suspended"
	LineCancelled LineStatus = "cancelled"
)

// Line 电话线路
type Line struct {
	Model
	Number         string     `gorm:"size:32;uniqueIndex;not null" json:"number" binding:"required,max=32"`
	CompanyID      uint       `gorm:"not null;index" json:"companyId" binding:"required"`
	Company        *Company   `json:"company,omitempty" binding:"-"`
	EmployeeID     *uint      `gorm:"index" json:"employeeId"`
	Employee       *Employee  `json:"employee,omitempty" binding:"-"`
	PlanID         uint       `gorm:"not null;index" json:"planId" binding:"required"`
	Plan           *Plan      `json:"plan,omitempty" binding:"-"`
	Status         LineStatus `gorm:"size:16;not null;default:active" json:"status" binding:"omitempty,oneof=active suspended cancelled"`
	ActivationDate *Date      `json:"activationDate"`
	Notes          string     `gorm:"size:1000" json:"notes" binding:"max=1000"`
}

func (Line) TableName() string { return "phone_lines" }
