package model

import "go.mongodb.org/mongo-driver/bson/primitive"

type FlightDetails struct {
	From        string `json:"from,omitempty" bson:"from,omitempty"`
	FromAirport string `json:"fromAirport,omitempty" bson:"fromAirport,omitempty"`
	To          string `json:"to,omitempty" bson:"to,omitempty"`
	ToAirport   string `json:"toAirport,omitempty" bson:"toAirport,omitempty"`
	Date        string `json:"date,omitempty" bson:"date,omitempty"`
}

// Passenger is written once by the booking flow and never updated.
type Passenger struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	FlightDetails   *FlightDetails     `json:"flightDetails,omitempty" bson:"flightDetails,omitempty"`
	Name            string             `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,max=200"`
	Age             *Int               `json:"age,omitempty" bson:"age,omitempty" validate:"omitempty,min=0,max=150"`
	Gender          string             `json:"gender,omitempty" bson:"gender,omitempty"`
	BookingID       string             `json:"bookingId" bson:"bookingId"`
	Mobile          string             `json:"mobile,omitempty" bson:"mobile,omitempty"`
	Email           string             `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	PaymentMethod   string             `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty"`
	MealPreference  string             `json:"mealPreference,omitempty" bson:"mealPreference,omitempty"`
	TravelInsurance *Bool              `json:"travelInsurance,omitempty" bson:"travelInsurance,omitempty"`
}
