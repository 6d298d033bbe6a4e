package dto

type SetRoleRequest struct {
	IsAdmin bool `json:"isAdmin"`
}

type SetBanRequest struct {
	IsBanned bool `json:"isBanned"`
}

type SaveAdvertisementRequest struct {
	IsEnabled bool   `json:"is_enabled" form:"is_enabled"`
	TargetURL string `json:"target_url" form:"target_url"`
}
