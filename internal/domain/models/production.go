package models

import "fmt"

// NavigateProductionOrderCreation is where new products and output batches are created.
const NavigateProductionOrderCreation = "/production-workflow/production-order-creation"

// PackingUnits lists the units a packing material may be measured in.
var PackingUnits = []string{"KG", "Gram", "Litre", "ML", "Pieces"}

// ProductionOutputField names one scalar field of a production order output.
type ProductionOutputField string

const (
	POAuthPassword               ProductionOutputField = "authPassword"
	POProductName                ProductionOutputField = "productName"
	POProducedQuantity           ProductionOutputField = "producedQuantity"
	POProductionCompletionDate   ProductionOutputField = "productionCompletionDate"
	POStorageLocationForOutput   ProductionOutputField = "storageLocationforOutput"
	POBatchNumberForOutput       ProductionOutputField = "batchNumberforOutput"
	POProductionNotes            ProductionOutputField = "productionNotes"
	POYield                      ProductionOutputField = "Yield"
	POOutputQualityRating        ProductionOutputField = "outputQualityRating"
	POOutputHandlingInstructions ProductionOutputField = "outputHandlingInstructions"
)

var productionOutputFields = map[string]ProductionOutputField{
	string(POAuthPassword):               POAuthPassword,
	string(POProductName):                POProductName,
	string(POProducedQuantity):           POProducedQuantity,
	string(POProductionCompletionDate):   POProductionCompletionDate,
	string(POStorageLocationForOutput):   POStorageLocationForOutput,
	string(POBatchNumberForOutput):       POBatchNumberForOutput,
	string(POProductionNotes):            POProductionNotes,
	string(POYield):                      POYield,
	string(POOutputQualityRating):        POOutputQualityRating,
	string(POOutputHandlingInstructions): POOutputHandlingInstructions,
}

// ParseProductionOutputField resolves a wire field name. The record id is not editable.
func ParseProductionOutputField(name string) (ProductionOutputField, error) {
	f, ok := productionOutputFields[name]
	if !ok {
		return "", fmt.Errorf("production output %q: %w", name, ErrUnknownField)
	}
	return f, nil
}

// PackingMaterialField names one column of a packing material row.
type PackingMaterialField string

const (
	PMType     PackingMaterialField = "type"
	PMQuantity PackingMaterialField = "quantity"
	PMUnit     PackingMaterialField = "unit"
)

// ParsePackingMaterialField resolves a wire field name.
func ParsePackingMaterialField(name string) (PackingMaterialField, error) {
	switch PackingMaterialField(name) {
	case PMType, PMQuantity, PMUnit:
		return PackingMaterialField(name), nil
	}
	return "", fmt.Errorf("packing material %q: %w", name, ErrUnknownField)
}

// PackingMaterial is one packing line of a production output.
type PackingMaterial struct {
	Type     string      `json:"type"`
	Quantity NumericText `json:"quantity"`
	Unit     string      `json:"unit"`
}

// With returns a copy of the row with one field replaced.
func (p PackingMaterial) With(f PackingMaterialField, value string) PackingMaterial {
	switch f {
	case PMType:
		p.Type = value
	case PMQuantity:
		p.Quantity = NumericText(value)
	case PMUnit:
		p.Unit = value
	}
	return p
}

// ProductionOutputRecord is the form record of a production order output edit. It is
// also the body of the edit call.
type ProductionOutputRecord struct {
	AuthPassword               string            `json:"authPassword"`
	ProductionOrderOutputID    string            `json:"productionOrderoutputId"`
	ProductName                string            `json:"productName"`
	ProducedQuantity           NumericText       `json:"producedQuantity"`
	ProductionCompletionDate   string            `json:"productionCompletionDate"`
	StorageLocationForOutput   string            `json:"storageLocationforOutput"`
	BatchNumberForOutput       string            `json:"batchNumberforOutput"`
	ProductionNotes            string            `json:"productionNotes"`
	Yield                      NumericText       `json:"Yield"`
	OutputQualityRating        string            `json:"outputQualityRating"`
	OutputHandlingInstructions string            `json:"outputHandlingInstructions"`
	PackingMaterials           []PackingMaterial `json:"packingMaterials"`
}

// Get returns the value of a scalar field.
func (r ProductionOutputRecord) Get(f ProductionOutputField) string {
	switch f {
	case POAuthPassword:
		return r.AuthPassword
	case POProductName:
		return r.ProductName
	case POProducedQuantity:
		return string(r.ProducedQuantity)
	case POProductionCompletionDate:
		return r.ProductionCompletionDate
	case POStorageLocationForOutput:
		return r.StorageLocationForOutput
	case POBatchNumberForOutput:
		return r.BatchNumberForOutput
	case POProductionNotes:
		return r.ProductionNotes
	case POYield:
		return string(r.Yield)
	case POOutputQualityRating:
		return r.OutputQualityRating
	case POOutputHandlingInstructions:
		return r.OutputHandlingInstructions
	}
	return ""
}

// Set assigns a scalar field value.
func (r *ProductionOutputRecord) Set(f ProductionOutputField, value string) {
	switch f {
	case POAuthPassword:
		r.AuthPassword = value
	case POProductName:
		r.ProductName = value
	case POProducedQuantity:
		r.ProducedQuantity = NumericText(value)
	case POProductionCompletionDate:
		r.ProductionCompletionDate = value
	case POStorageLocationForOutput:
		r.StorageLocationForOutput = value
	case POBatchNumberForOutput:
		r.BatchNumberForOutput = value
	case POProductionNotes:
		r.ProductionNotes = value
	case POYield:
		r.Yield = NumericText(value)
	case POOutputQualityRating:
		r.OutputQualityRating = value
	case POOutputHandlingInstructions:
		r.OutputHandlingInstructions = value
	}
}

// EmptyProductionOutput is the reset state of the edit form: blank fields and one
// blank packing row.
func EmptyProductionOutput() ProductionOutputRecord {
	return ProductionOutputRecord{PackingMaterials: []PackingMaterial{{}}}
}

// SeedProductionOutput prepares an existing output for editing. The authorization
// password is never carried over.
func SeedProductionOutput(existing ProductionOutputRecord) ProductionOutputRecord {
	seeded := existing
	seeded.AuthPassword = ""
	seeded.ProductionCompletionDate = NormalizeDate(existing.ProductionCompletionDate)
	if len(existing.PackingMaterials) == 0 {
		seeded.PackingMaterials = []PackingMaterial{{}}
	} else {
		seeded.PackingMaterials = append([]PackingMaterial(nil), existing.PackingMaterials...)
	}
	return seeded
}
