package model

const (
	TemplateBookingConfirmation = "booking_confirmation"
	TemplateBookingAlert        = "booking_alert"
	TemplateInquiryAlert        = "inquiry_alert"
	TemplateInquiryReceipt      = "inquiry_receipt"

	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Data keys shared by the templates.
const (
	KeyStudio      = "studio"
	KeyName        = "name"
	KeyEmail       = "email"
	KeyPhone       = "phone"
	KeyDate        = "date"
	KeyTime        = "time"
	KeyTypeOfShoot = "typeOfShoot"
	KeyLocation    = "location"
	KeyMessage     = "message"
)

// Message is one templated notification for one recipient. It is also the Kafka payload.
type Message struct {
	Template string            `json:"template"`
	Channel  string            `json:"channel"`
	To       string            `json:"to"`
	Data     map[string]string `json:"data"`
}

func Email(template, to string, data map[string]string) Message {
	return Message{Template: template, Channel: ChannelEmail, To: to, Data: data}
}

func SMS(template, to string, data map[string]string) Message {
	return Message{Template: template, Channel: ChannelSMS, To: to, Data: data}
}

// Key groups messages of one event on the same Kafka partition.
func (m Message) Key() string {
	return m.Template + ":" + m.To
}
