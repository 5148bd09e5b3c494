package services

import (
	"encoding/json"

	"tax-backoffice-backend/db/models"
	"tax-backoffice-backend/utils"
)

type CalculationDTO struct {
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	Kind            string          `json:"kind"`
	Input           json.RawMessage `json:"input"`
	Result          json.RawMessage `json:"result"`
	SourceTimestamp int64           `json:"sourceTimestamp"`
	CreatedAt       int64           `json:"createdAt"`
}

func MapCalculation(calculation models.Calculation) CalculationDTO {
	created := calculation.CreatedAt
	dto := CalculationDTO{
		ID:              calculation.ID,
		Kind:            calculation.Kind,
		Input:           rawOrEmpty(calculation.Input),
		Result:          rawOrEmpty(calculation.Result),
		SourceTimestamp: utils.MillisOrNow(calculation.SourceTimestamp),
		CreatedAt:       utils.MillisOrNow(&created),
	}
	if calculation.User != nil {
		dto.Email = calculation.User.Email
	}
	return dto
}

func MapCalculations(calculations []models.Calculation) []CalculationDTO {
	out := make([]CalculationDTO, 0, len(calculations))
	for _, c := range calculations {
		out = append(out, MapCalculation(c))
	}
	return out
}

func rawOrEmpty(blob []byte) json.RawMessage {
	if len(blob) == 0 {
		return json.RawMessage("{}")
	}
	return json.RawMessage(blob)
}
