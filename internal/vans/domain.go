package vans

// Van is a pick-and-drop vehicle assigned to a branch.
type Van struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	PlateNumber string `json:"plateNumber"`
	DriverName  string `json:"driverName"`
	Capacity    int    `json:"capacity"`
	BranchID    int64  `json:"branchId"`
	BranchName  string `json:"branchName"`
	IsActive    bool   `json:"isActive"`
}

// BranchOption feeds the branch filter select.
type BranchOption struct {
	ID   int64
	Name string
}
