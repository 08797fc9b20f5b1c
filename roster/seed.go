/*
seed.go - Bundled fallback dataset

PURPOSE:
  When the persistence collaborator has nothing usable for a collection
  (first run, wiped database, corrupt blob), the store starts from this
  demo roster instead of an empty screen. The dataset is the original
  console's: five collaborators across three management units, their hire
  records, one termination, two sanctions and two absences.
*/
package roster

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeedCollaborators returns a fresh copy of the demo roster.
func SeedCollaborators() []Collaborator {
	return []Collaborator{
		{
			ID: "c1", Name: "Ana García", DNI: "12345678A", Legajo: "1001", CUIL: "27-12345678-5",
			Position: "Desarrolladora Frontend", UG: "UG2-VISTA MENDOZA", Status: StatusActive,
			HireDate: NewDate(2022, time.January, 15), ContractType: ContractIndefinite,
			Category: "Sistemas", CCT: "UOM", Service: "Desarrollo", Turn: "Mañana",
		},
		{
			ID: "c2", Name: "Luis Martínez", DNI: "87654321B", Legajo: "1002", CUIL: "20-87654321-8",
			Position: "Desarrollador Backend", UG: "UG2-VISTA MENDOZA", Status: StatusActive,
			HireDate: NewDate(2021, time.November, 20), ContractType: ContractIndefinite,
			Category: "Sistemas", CCT: "UOM", Service: "Desarrollo", Turn: "Tarde",
		},
		{
			ID: "c3", Name: "Sofía Rodríguez", DNI: "11223344C", Legajo: "1003", CUIL: "27-11223344-9",
			Position: "Diseñadora UX/UI", UG: "UG3-VITSA CORDOBA", Status: StatusActive,
			HireDate: NewDate(2022, time.March, 10), ContractType: ContractFixedTerm,
			Category: "Diseño", CCT: "Comercio", Service: "Producto", Turn: "Mañana",
		},
		{
			ID: "c4", Name: "Carlos Sánchez", DNI: "44556677D", Legajo: "1004", CUIL: "20-44556677-1",
			Position: "Jefe de Proyecto", UG: "UG3-VITSA CORDOBA", Status: StatusInactive,
			HireDate: NewDate(2020, time.May, 1), ContractType: ContractIndefinite,
			Category: "Management", CCT: "Fuera de Convenio", Service: "Producto", Turn: "Mañana",
		},
		{
			ID: "c5", Name: "Laura Gómez", DNI: "99887766E", Legajo: "1005", CUIL: "27-99887766-3",
			Position: "Analista de RRHH", UG: "UG1-LEXXOR", Status: StatusActive,
			HireDate: NewDate(2023, time.February, 1), ContractType: ContractOccasional,
			Category: "Administración", CCT: "Comercio", Service: "RRHH", Turn: "Mañana",
			Observations: "Ingreso por reemplazo temporal.",
		},
	}
}

// SeedRecords returns a fresh copy of the demo event log.
func SeedRecords() []HRRecord {
	return []HRRecord{
		seedRecord("r1", NewDate(2022, time.January, 15), "c1", "UG2-VISTA MENDOZA", "Desarrolladora Frontend",
			HireDetails{Salary: decimal.NewFromInt(45000)}, 1500, ""),
		seedRecord("r2", NewDate(2021, time.November, 20), "c2", "UG2-VISTA MENDOZA", "Desarrollador Backend",
			HireDetails{Salary: decimal.NewFromInt(50000)}, 1800, ""),
		seedRecord("r3", NewDate(2022, time.March, 10), "c3", "UG3-VITSA CORDOBA", "Diseñadora UX/UI",
			HireDetails{Salary: decimal.NewFromInt(42000)}, 1300, ""),
		seedRecord("r4", NewDate(2020, time.May, 1), "c4", "UG3-VITSA CORDOBA", "Jefe de Proyecto",
			HireDetails{Salary: decimal.NewFromInt(65000)}, 2500, ""),
		seedRecord("r5", NewDate(2023, time.February, 1), "c5", "UG1-LEXXOR", "Analista de RRHH",
			HireDetails{Salary: decimal.NewFromInt(38000)}, 1200, ""),
		seedRecord("r6", NewDate(2023, time.June, 30), "c4", "UG3-VITSA CORDOBA", "Jefe de Proyecto",
			TerminationDetails{Reason: ReasonContractEnd}, 5000, "Finalización de proyecto X."),
		seedRecord("r7", NewDate(2023, time.April, 5), "c2", "UG2-VISTA MENDOZA", "Desarrollador Backend",
			SanctionDetails{Type: SanctionWrittenWarning, Reason: "Retrasos reiterados en la entrega de tareas."}, 0, ""),
		seedRecord("r8", NewDate(2023, time.May, 22), "c1", "UG2-VISTA MENDOZA", "Desarrolladora Frontend",
			AbsenceDetails{Reason: AbsenceART, Days: 3}, 0, "Revisión médica programada."),
		seedRecord("r9", NewDate(2023, time.July, 1), "c3", "UG3-VITSA CORDOBA", "Diseñadora UX/UI",
			SanctionDetails{Type: SanctionVerbalWarning, Reason: "Uso indebido de recursos de la empresa."}, 0, ""),
		seedRecord("r10", NewDate(2023, time.July, 10), "c5", "UG1-LEXXOR", "Analista de RRHH",
			AbsenceDetails{Reason: AbsenceJustified, Days: 1}, 0, ""),
	}
}

func seedRecord(id string, date Date, collaboratorID, ug, position string, details RecordDetails, cost int64, observations string) HRRecord {
	return HRRecord{
		ID:             id,
		Date:           date,
		CollaboratorID: collaboratorID,
		UG:             ug,
		Position:       position,
		Type:           details.Kind(),
		Details:        details,
		Cost:           decimal.NewFromInt(cost),
		Observations:   observations,
	}
}
