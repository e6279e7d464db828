package models

import "fmt"

// Quality statuses accepted by the backend.
const (
	QualityAccepted   = "Accepted"
	QualityQuarantine = "Quarantine"
	QualityRejected   = "Rejected"
)

// QualityStatuses lists the selectable inspection outcomes in display order.
var QualityStatuses = []string{QualityAccepted, QualityQuarantine, QualityRejected}

// Parameter result statuses computed from the measured value.
const (
	ParameterPass = "PASS"
	ParameterFail = "FAIL"
)

// NavigateCurrentStock is where new materials, material codes and batches are created.
const NavigateCurrentStock = "/vendor-stock-management/current-stock"

// QualityCheckField names one editable field of a quality check.
type QualityCheckField string

const (
	QCBatchNumber    QualityCheckField = "batchNumber"
	QCMaterialName   QualityCheckField = "materialName"
	QCMaterialCode   QualityCheckField = "materialCode"
	QCInspectionDate QualityCheckField = "inspectionDate"
	QCInspectorName  QualityCheckField = "inspectorName"
	QCQualityStatus  QualityCheckField = "qualityStatus"
	QCComments       QualityCheckField = "comments"
)

var qualityCheckFields = map[string]QualityCheckField{
	string(QCBatchNumber):    QCBatchNumber,
	string(QCMaterialName):   QCMaterialName,
	string(QCMaterialCode):   QCMaterialCode,
	string(QCInspectionDate): QCInspectionDate,
	string(QCInspectorName):  QCInspectorName,
	string(QCQualityStatus):  QCQualityStatus,
	string(QCComments):       QCComments,
}

// ParseQualityCheckField resolves a wire field name.
func ParseQualityCheckField(name string) (QualityCheckField, error) {
	f, ok := qualityCheckFields[name]
	if !ok {
		return "", fmt.Errorf("quality check %q: %w", name, ErrUnknownField)
	}
	return f, nil
}

// QualityCheckRecord is the form record of a quality inspection. It is also the body
// of the create call.
type QualityCheckRecord struct {
	BatchNumber    string `json:"batchNumber"`
	MaterialName   string `json:"materialName"`
	MaterialCode   string `json:"materialCode,omitempty"`
	InspectionDate string `json:"inspectionDate"`
	InspectorName  string `json:"inspectorName"`
	QualityStatus  string `json:"qualityStatus"`
	Comments       string `json:"comments"`
}

// Get returns the value of a field.
func (r QualityCheckRecord) Get(f QualityCheckField) string {
	switch f {
	case QCBatchNumber:
		return r.BatchNumber
	case QCMaterialName:
		return r.MaterialName
	case QCMaterialCode:
		return r.MaterialCode
	case QCInspectionDate:
		return r.InspectionDate
	case QCInspectorName:
		return r.InspectorName
	case QCQualityStatus:
		return r.QualityStatus
	case QCComments:
		return r.Comments
	}
	return ""
}

// Set assigns a field value.
func (r *QualityCheckRecord) Set(f QualityCheckField, value string) {
	switch f {
	case QCBatchNumber:
		r.BatchNumber = value
	case QCMaterialName:
		r.MaterialName = value
	case QCMaterialCode:
		r.MaterialCode = value
	case QCInspectionDate:
		r.InspectionDate = value
	case QCInspectorName:
		r.InspectorName = value
	case QCQualityStatus:
		r.QualityStatus = value
	case QCComments:
		r.Comments = value
	}
}

// Batch ties a material to its code and batch number in current stock.
type Batch struct {
	MaterialName string `json:"materialName"`
	MaterialCode string `json:"materialCode"`
	BatchNumber  string `json:"batchNumber"`
}

// QCParameter is a measurable attribute checked during an inspection.
type QCParameter struct {
	ID               string `json:"_id"`
	ParameterName    string `json:"parameterName"`
	MethodOfAnalysis string `json:"methodOfAnalysis"`
	MinRange         Bound  `json:"minRange"`
	MaxRange         Bound  `json:"maxRange"`
	Unit             string `json:"unit"`
}

// ParameterRowField names a user-editable column of a parameter result row.
type ParameterRowField string

const (
	ParamActualResult ParameterRowField = "actualResult"
	ParamRemarks      ParameterRowField = "remarks"
)

// ParseParameterRowField resolves a wire field name.
func ParseParameterRowField(name string) (ParameterRowField, error) {
	switch ParameterRowField(name) {
	case ParamActualResult, ParamRemarks:
		return ParameterRowField(name), nil
	}
	return "", fmt.Errorf("parameter row %q: %w", name, ErrUnknownField)
}

// ParameterResultRow is one QC parameter with the inspector's measurement.
type ParameterResultRow struct {
	QCParameter
	ActualResult string `json:"actualResult"`
	Remarks      string `json:"remarks"`
	Status       string `json:"status"`
}

// ParameterResult is the body of the dependent write recording one measurement.
type ParameterResult struct {
	QualityCheck string `json:"qualityCheck"`
	Parameter    string `json:"parameter"`
	ActualResult string `json:"actualResult"`
	Status       string `json:"status"`
	Remarks      string `json:"remarks"`
}

// QualityCheck is a persisted inspection as listed by the backend.
type QualityCheck struct {
	ID             string `json:"_id"`
	GRN            string `json:"grn"`
	MaterialName   string `json:"materialName"`
	MaterialCode   string `json:"materialCode"`
	InspectionDate string `json:"inspectionDate"`
	InspectorName  string `json:"inspectorName"`
	QualityStatus  string `json:"qualityStatus"`
	Comments       string `json:"comments"`
}
