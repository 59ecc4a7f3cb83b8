package entity

import "fmt"

// Money is an amount in minor units (cents)
type Money int64

// Units builds a Money value from whole currency units
func Units(n int) Money {
	return Money(n * 100)
}

// String renders the amount with two decimals
func (m Money) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%d.%02d", sign, m/100, m%100)
}

// Currency used for every priced quote
const Currency = "EUR"

// Fare is a priced fare breakdown
type Fare struct {
	Base  Money `json:"base"`
	Tax   Money `json:"tax"`
	Fees  Money `json:"fees"`
	Total Money `json:"total"`
}

// MockFare is the fixed fare quoted by every pricing command
func MockFare() Fare {
	fare := Fare{Base: 2129, Tax: 1300, Fees: 1111}
	fare.Total = fare.Base + fare.Tax + fare.Fees
	return fare
}
