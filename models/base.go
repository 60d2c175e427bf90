package models

import "math"

// MaxAmount bounds any single points, xp, level or price value one operation accepts
const MaxAmount = math.MaxInt32

const (
	StatusSuccess      = 200
	StatusUnauthorized = 401
)

type ApiResponse[T any] struct {
	Success bool   `json:"success"`
	Status  int    `json:"status"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}
