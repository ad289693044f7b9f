package handler

import "time"

type createClientRequest struct {
	CompanyName   string  `json:"companyName" validate:"required,max=255"`
	ContactPerson string  `json:"contactPerson" validate:"required,max=255"`
	CNPJ          *string `json:"cnpj" validate:"omitnil,min=14,max=18"`
}

type updateClientRequest struct {
	CompanyName   *string `json:"companyName" validate:"omitnil,min=1,max=255"`
	ContactPerson *string `json:"contactPerson" validate:"omitnil,min=1,max=255"`
	CNPJ          *string `json:"cnpj" validate:"omitnil,min=14,max=18"`
}

type clientResponse struct {
	ID            string    `json:"id"`
	CompanyName   string    `json:"companyName"`
	ContactPerson string    `json:"contactPerson"`
	CNPJ          *string   `json:"cnpj"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
