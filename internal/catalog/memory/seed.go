package memory

import "maxgear/internal/domain"

// SeedProducts returns the demo assortment used by offline mode and the stub
// server. Some codes are carried by two suppliers and some rows have no price.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{Code: "0130-ACV40", SupplierID: "1", Brand: "Febest", Name: "Arm bushing front lower", Stock: 12, PriceEUR: domain.Price(9.8)},
		{Code: "0130-ACV40", SupplierID: "2", Brand: "Febest", Name: "Arm bushing front lower", Stock: 3, PriceEUR: domain.Price(10.45)},
		{Code: "TAB-131", SupplierID: "1", Brand: "Febest", Name: "Rear arm bushing", Stock: 0, PriceEUR: domain.Price(7.2)},
		{Code: "0123-GSU45F", SupplierID: "2", Brand: "Febest", Name: "Tie rod end", Stock: 8},
		{Code: "72-0183", SupplierID: "1", Brand: "Maxgear", Name: "Brake disc front", Stock: 24, PriceEUR: domain.Price(31.5)},
		{Code: "19-0879", SupplierID: "1", Brand: "Maxgear", Name: "Brake pad set", Stock: 10, PriceEUR: domain.Price(18.9)},
		{Code: "72-0183", SupplierID: "3", Brand: "Maxgear", Name: "Brake disc front", Stock: 2, PriceEUR: domain.Price(29.99)},
		{Code: "27-0217", SupplierID: "3", Brand: "Maxgear", Name: "Ignition coil", Stock: 5},
		{Code: "OC 90", SupplierID: "2", Brand: "Mahle", Name: "Oil filter", Stock: 40, PriceEUR: domain.Price(6.35)},
		{Code: "LX 1566", SupplierID: "2", Brand: "Mahle", Name: "Air filter", Stock: 15, PriceEUR: domain.Price(11.1)},
		{Code: "GDB1550", SupplierID: "3", Brand: "TRW", Name: "Brake pad set rear", Stock: 6, PriceEUR: domain.Price(27.4)},
		{Code: "JTE1139", SupplierID: "3", Brand: "TRW", Name: "Tie rod end", Stock: 0},
	}
}
