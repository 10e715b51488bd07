package domain

import "time"

// ReturnStatus is the closed set of states a return request moves through.
// There is no enforced ordering: any status is reachable from any other by
// explicit admin action.
type ReturnStatus string

const (
	ReturnRequested       ReturnStatus = "requested"
	ReturnApproved        ReturnStatus = "return_approved"
	ReturnRejected        ReturnStatus = "return_rejected"
	ReturnPickupScheduled ReturnStatus = "pickup_scheduled"
	ReturnPickedUp        ReturnStatus = "picked_up"
	ReturnQCPassed        ReturnStatus = "qc_passed"
	ReturnQCFailed        ReturnStatus = "qc_failed"
	ReturnRefundInitiated ReturnStatus = "refund_initiated"
	ReturnCompleted       ReturnStatus = "completed"
)

// ReturnStatuses lists every valid return status in display order.
var ReturnStatuses = []ReturnStatus{
	ReturnRequested,
	ReturnApproved,
	ReturnRejected,
	ReturnPickupScheduled,
	ReturnPickedUp,
	ReturnQCPassed,
	ReturnQCFailed,
	ReturnRefundInitiated,
	ReturnCompleted,
}

// Valid reports whether s is a member of the closed enum.
func (s ReturnStatus) Valid() bool {
	for _, v := range ReturnStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CanTransitionReturn is the allowed-transitions predicate for returns:
// unconstrained except for re-selecting the currently-active status.
func CanTransitionReturn(from, to ReturnStatus) bool {
	return to.Valid() && from != to
}

// Return is a customer return request against a single order item.
type Return struct {
	ID          string       `json:"id"`
	OrderID     string       `json:"order_id"`
	OrderItemID string       `json:"order_item_id"`
	UserID      string       `json:"user_id"`
	ReasonType  string       `json:"reason_type"`
	Reason      string       `json:"reason"`
	Description string       `json:"description,omitempty"`
	Status      ReturnStatus `json:"status"`
	AdminRemark string       `json:"admin_remark,omitempty"`
	Images      []string     `json:"images,omitempty"`
	RequestedAt time.Time    `json:"requested_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ReturnDetail is a return enriched with its parent order for the detail view.
type ReturnDetail struct {
	Return
	Order *Order `json:"order,omitempty"`
}

// ReturnUpdateResult reports the asymmetric two-phase outcome of a return
// status update: the local write is authoritative, the downstream order
// notification is best-effort. Synced=false carries a warning, not an error.
type ReturnUpdateResult struct {
	Return  *Return `json:"return"`
	Synced  bool    `json:"synced"`
	Warning string  `json:"warning,omitempty"`
}
