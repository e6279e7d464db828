package form

import (
	"github.com/mamadbah2/mfgconsole/internal/domain/models"
)

// PackingMaterialsList is the error-key namespace of packing material rows.
const PackingMaterialsList = "packingMaterials"

var productionOutputRequired = []struct {
	field   models.ProductionOutputField
	label   string
	numeric bool
}{
	{models.POAuthPassword, "Authorization Password", false},
	{models.POProducedQuantity, "Produced Quantity", true},
	{models.POProductName, "Product Name", false},
	{models.POProductionCompletionDate, "Production Completion Date", false},
	{models.POStorageLocationForOutput, "Storage Location for Output", false},
	{models.POProductionNotes, "Production Notes", false},
	{models.POYield, "Yield", true},
	{models.POOutputQualityRating, "Output Quality Rating", false},
	{models.POOutputHandlingInstructions, "Output Handling Instructions", false},
}

// ValidateProductionOutput maps a production order output edit to an error map.
func ValidateProductionOutput(rec models.ProductionOutputRecord) models.ErrorMap {
	errs := models.ErrorMap{}

	for _, rule := range productionOutputRequired {
		if rule.numeric {
			requireNumber(errs, string(rule.field), rule.label, rec.Get(rule.field))
			continue
		}
		requireField(errs, string(rule.field), rule.label, rec.Get(rule.field))
	}
	validateDate(errs, string(models.POProductionCompletionDate), "Production Completion Date", rec.ProductionCompletionDate)

	for i, pm := range rec.PackingMaterials {
		requireField(errs, RowKey(PackingMaterialsList, i, string(models.PMType)), "Type", pm.Type)
		requireNumber(errs, RowKey(PackingMaterialsList, i, string(models.PMQuantity)), "Quantity", string(pm.Quantity))
		unitKey := RowKey(PackingMaterialsList, i, string(models.PMUnit))
		if requireField(errs, unitKey, "Unit", pm.Unit) {
			validateEnum(errs, unitKey, "Unit", pm.Unit, models.PackingUnits)
		}
	}

	return errs
}

// ProductionOutputOptions lists the select entries of the edit form. Product and batch
// lists end with an entry navigating to production order creation.
func ProductionOutputOptions(products, batches []string) map[string][]models.Option {
	nav := &models.NavigationCommand{Target: models.NavigateProductionOrderCreation}

	productOpts := make([]models.Option, 0, len(products)+1)
	for _, p := range products {
		productOpts = append(productOpts, models.Option{Label: p, Value: p})
	}
	productOpts = append(productOpts, models.Option{Label: "Add New Product +", Navigate: nav})

	batchOpts := make([]models.Option, 0, len(batches)+1)
	for _, b := range batches {
		batchOpts = append(batchOpts, models.Option{Label: b, Value: b})
	}
	batchOpts = append(batchOpts, models.Option{Label: "Add New Batch +", Navigate: nav})

	units := make([]models.Option, 0, len(models.PackingUnits))
	for _, u := range models.PackingUnits {
		units = append(units, models.Option{Label: u, Value: u})
	}

	return map[string][]models.Option{
		string(models.POProductName):          productOpts,
		string(models.POBatchNumberForOutput): batchOpts,
		PackingMaterialsList + ".unit":        units,
	}
}
