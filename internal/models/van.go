package models

// Van holds the vehicle registration record for a terminal van. Like
// operators, vans are archived rather than deleted.
type Van struct {
	ID                 int64  `db:"id" json:"id"`
	MVFileNo           string `db:"mv_file_no" json:"mv_file_no"`
	PlateNumber        string `db:"plate_number" json:"plate_number"`
	EngineNo           string `db:"engine_no" json:"engine_no"`
	ChassisNo          string `db:"chassis_no" json:"chassis_no"`
	Denomination       string `db:"denomination" json:"denomination"`
	PistonDisplacement string `db:"piston_displacement" json:"piston_displacement"`
	NumberOfCylinders  int    `db:"number_of_cylinders" json:"number_of_cylinders"`
	Fuel               string `db:"fuel" json:"fuel"`
	Make               string `db:"make" json:"make"`
	Series             string `db:"series" json:"series"`
	BodyType           string `db:"body_type" json:"body_type"`
	BodyNo             string `db:"body_no" json:"body_no"`
	YearModel          int    `db:"year_model" json:"year_model"`
	GrossWeight        int    `db:"gross_weight" json:"gross_weight"`
	NetWeight          int    `db:"net_weight" json:"net_weight"`
	ShippingWeight     int    `db:"shipping_weight" json:"shipping_weight"`
	NetCapacity        int    `db:"net_capacity" json:"net_capacity"`
	YearLastRegistered int    `db:"year_last_registered" json:"year_last_registered"`
	ExpirationDate     string `db:"expiration_date" json:"expiration_date"`
	Archived           bool   `db:"archived" json:"-"`
}
