package service

import (
	htmltemplate "html/template"
	texttemplate "text/template"
)

type Kind string

const (
	KindFlight Kind = "flight"
	KindHotel  Kind = "hotel"
)

type templateSet struct {
	subject string
	text    *texttemplate.Template
	html    *htmltemplate.Template
}

const flightText = `Hello {{.Name}}, your flight from {{.Flight.From}} to {{.Flight.To}} has been booked successfully.`

const flightHTML = `<h1>Booking Confirmation</h1><p>Hello {{.Name}},</p><p>Your flight from {{.Flight.From}} ({{.Flight.FromAirport}}) to {{.Flight.To}} ({{.Flight.ToAirport}}) on {{.Flight.Date}} has been booked successfully.</p>`

const hotelText = `Hello {{.CustomerName}}, your hotel booking at {{.Hotel}} has been confirmed. Room Class: {{.RoomClass}}, Room Count: {{.RoomCount}}, Start Date: {{.StartDate}}, End Date: {{.EndDate}}, Total Price: ₹{{.TotalPrice}}.`

const hotelHTML = `<h1>Booking Confirmation</h1>
<p>Hello {{.CustomerName}},</p>
<p>Your hotel booking at <strong>{{.Hotel}}</strong> has been confirmed.</p>
<p>Room Class: {{.RoomClass}}<br/>
Room Count: {{.RoomCount}}<br/>
Start Date: {{.StartDate}}<br/>
End Date: {{.EndDate}}<br/>
Number of Days: {{.NumberOfDays}}<br/>
Total Price: ₹{{.TotalPrice}}</p>`

func newTemplateSet(name, subject, text, html string) templateSet {
	return templateSet{
		subject: subject,
		text:    texttemplate.Must(texttemplate.New(name).Option("missingkey=zero").Parse(text)),
		html:    htmltemplate.Must(htmltemplate.New(name).Option("missingkey=zero").Parse(html)),
	}
}

var templates = map[Kind]templateSet{
	KindFlight: newTemplateSet("flight", "Flight Booking Confirmation", flightText, flightHTML),
	KindHotel:  newTemplateSet("hotel", "Hotel Booking Confirmation", hotelText, hotelHTML),
}
