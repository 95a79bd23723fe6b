package identity

import "github.com/google/uuid"

// Action names an operation a principal may attempt. Every HTTP entry point
// authorizes through Authorize with one of these, never with ad hoc role checks.
type Action string

const (
	ActionDayOpen         Action = "day:open"
	ActionDayClose        Action = "day:close"
	ActionDayLock         Action = "day:lock"
	ActionStockEntry      Action = "stock:entry"
	ActionStockRead       Action = "stock:read"
	ActionShortageJustify Action = "stock:justify"
	ActionBillingCreate   Action = "billing:create"
	ActionDueClear        Action = "billing:clear_due"
	ActionLedgerRead      Action = "ledger:read"
	ActionInvoiceRead     Action = "invoice:read"
	ActionCatalogManage   Action = "catalog:manage"
	ActionCatalogRead     Action = "catalog:read"
	ActionPricingSet      Action = "pricing:set"
	ActionReportRead      Action = "report:read"
	ActionAuditRead       Action = "audit:read"
	ActionUserManage      Action = "user:manage"
)

// Principal is the authenticated caller attached to each request
type Principal struct {
	UserID   uuid.UUID
	Username string
	Role     Role
}

// Authorize is the single policy-evaluation function. Vendors can run the
// counter (billing, payments, reads); day lifecycle, stock entry and pricing
// require admin or above; user management is super_admin only.
func Authorize(p Principal, action Action) bool {
	if !p.Role.IsValid() {
		return false
	}

	switch action {
	case ActionUserManage:
		return p.Role == RoleSuperAdmin
	case ActionDayOpen, ActionDayClose, ActionDayLock,
		ActionStockEntry, ActionShortageJustify,
		ActionCatalogManage, ActionPricingSet, ActionAuditRead:
		return p.Role.AtLeastAdmin()
	case ActionBillingCreate, ActionDueClear,
		ActionStockRead, ActionLedgerRead, ActionInvoiceRead,
		ActionCatalogRead, ActionReportRead:
		return true
	}
	return false
}
