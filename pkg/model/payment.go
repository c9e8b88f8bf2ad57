package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// PaymentDetails is the booking summary the client submits alongside the
// gateway identifiers.
type PaymentDetails struct {
	Hotel        string `json:"hotel,omitempty" bson:"hotel,omitempty"`
	RoomClass    string `json:"roomClass,omitempty" bson:"roomClass,omitempty"`
	RoomCount    *Int   `json:"roomCount,omitempty" bson:"roomCount,omitempty"`
	StartDate    Date   `json:"startDate" bson:"startDate,omitempty"`
	EndDate      Date   `json:"endDate" bson:"endDate,omitempty"`
	NumberOfDays *Int   `json:"numberOfDays,omitempty" bson:"numberOfDays,omitempty"`
	TotalPrice   *Float `json:"totalPrice,omitempty" bson:"totalPrice,omitempty"`
	CustomerName string `json:"customerName,omitempty" bson:"customerName,omitempty"`
	Email        string `json:"email,omitempty" bson:"email,omitempty"`
	PhoneNumber  string `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
}

// Payment exists only for a gateway payment whose signature verified.
type Payment struct {
	ID             primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	PaymentDetails `bson:",inline"`

	RazorpayOrderID   string `json:"razorpayOrderId" bson:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId" bson:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature" bson:"razorpaySignature"`
}
