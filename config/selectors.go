package config

type LoginSelectors struct {
	Username string
	Password string
	Submit   string
}

type ServiceFormSelectors struct {
	Name     string
	Quantity string
	Price    string
	Tax      string
	Gross    string
	Submit   string
	Error    string
}

type ServicesListSelectors struct {
	Items         string
	ItemName      string
	EditButton    string
	DeleteButton  string
	QuantityBadge string
	PriceBadge    string
	TaxBadge      string
	GrossBadge    string
}

// Selectors are the CSS selectors of the web application's pages.
type Selectors struct {
	Login        LoginSelectors
	ServiceForm  ServiceFormSelectors
	ServicesList ServicesListSelectors
}

func DefaultSelectors() Selectors {
	return Selectors{
		Login: LoginSelectors{
			Username: "#loginform-username",
			Password: "#loginform-password",
			Submit:   "button[name='login-button']",
		},
		ServiceForm: ServiceFormSelectors{
			Name:     "#serviceform-name",
			Quantity: "#serviceform-quantity",
			Price:    "#serviceform-price",
			Tax:      "#serviceform-tax",
			Gross:    "#serviceform-gross",
			Submit:   "button[name='contact-button']",
			Error:    ".invalid-feedback",
		},
		ServicesList: ServicesListSelectors{
			Items:         ".list-group-item",
			ItemName:      "h5",
			EditButton:    "a[href*='/site/index?id=']",
			DeleteButton:  "a[href*='/site/delete?id=']",
			QuantityBadge: ".badge.bg-primary",
			PriceBadge:    ".badge.bg-info",
			TaxBadge:      ".badge.bg-secondary",
			GrossBadge:    ".badge.bg-success",
		},
	}
}
