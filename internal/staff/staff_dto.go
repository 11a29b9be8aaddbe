package staff

type AddStaffRequest struct {
	Firstname     string        `json:"firstname" binding:"required"`
	Lastname      string        `json:"lastname" binding:"required"`
	Email         string        `json:"email" binding:"required,email"`
	LineManagerID string        `json:"lineManagerID"`
	LeaveBalances LeaveBalances `json:"leaveBalances"`
}

// EditStaffRequest uses pointers so absent fields stay untouched.
type EditStaffRequest struct {
	Firstname     *string       `json:"firstname" binding:"omitempty,min=1"`
	Lastname      *string       `json:"lastname" binding:"omitempty,min=1"`
	Email         *string       `json:"email" binding:"omitempty,email"`
	LineManagerID *string       `json:"lineManagerID"`
	LeaveBalances LeaveBalances `json:"leaveBalances"`
}

func (r EditStaffRequest) IsEmpty() bool {
	return r.Firstname == nil &&
		r.Lastname == nil &&
		r.Email == nil &&
		r.LineManagerID == nil &&
		r.LeaveBalances == nil
}

type AddStaffResponse struct {
	StaffID string `json:"staffID"`
}

type StaffResponse struct {
	ID            string        `json:"id"`
	StaffID       string        `json:"staffID"`
	Firstname     string        `json:"firstname"`
	Lastname      string        `json:"lastname"`
	Email         string        `json:"email"`
	Role          string        `json:"role"`
	LineManagerID string        `json:"lineManagerID,omitempty"`
	LeaveBalances LeaveBalances `json:"leaveBalances"`
	CreatedAt     string        `json:"createdAt"`
	UpdatedAt     string        `json:"updatedAt"`
}
