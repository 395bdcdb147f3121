package dataset

import "github.com/okian/co2dash/internal/domain/model"

// Canonical column names.
const (
	ColCountry  = "country"
	ColCode     = "code"
	ColYear     = "year"
	ColTotalCO2 = "total_co2"
)

// EmissionColumns maps the emissions file headers to canonical names.
var EmissionColumns = map[string]string{
	"Entity":               ColCountry,
	"Code":                 ColCode,
	"Year":                 ColYear,
	"Annual CO₂ emissions": ColTotalCO2,
}

// SectorColumns maps the sector file headers to canonical names. Sector
// columns map to the sector display names.
var SectorColumns = map[string]string{
	"Entity":                                                       ColCountry,
	"Year":                                                         ColYear,
	"Carbon dioxide emissions from buildings":                      model.SectorBuildings.String(),
	"Carbon dioxide emissions from industry":                       model.SectorIndustry.String(),
	"Carbon dioxide emissions from land use change and forestry":   model.SectorLandUseForestry.String(),
	"Carbon dioxide emissions from other fuel combustion":          model.SectorOtherFuelCombustion.String(),
	"Carbon dioxide emissions from transport":                      model.SectorTransport.String(),
	"Carbon dioxide emissions from manufacturing and construction": model.SectorManufacturingConstruction.String(),
	"Fugitive emissions of carbon dioxide from energy production":  model.SectorFugitiveEnergy.String(),
	"Carbon dioxide emissions from electricity and heat":           model.SectorElectricityHeat.String(),
	"Carbon dioxide emissions from bunker fuels":                   model.SectorBunkerFuels.String(),
}

var emissionRequired = []string{ColCountry, ColCode, ColYear, ColTotalCO2}

func sectorRequired() []string {
	cols := []string{ColCountry, ColYear}
	for _, s := range model.Sectors() {
		cols = append(cols, s.String())
	}
	return cols
}
