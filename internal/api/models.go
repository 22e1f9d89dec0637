package api

// PunchStatus is the shift state returned by the server after a punch.
// The client never computes the next state itself, it only displays it.
type PunchStatus string

const (
	StatusTurnoIniciado   PunchStatus = "TURNO_INICIADO"
	StatusPausaIniciada   PunchStatus = "PAUSA_INICIADA"
	StatusPausaFinalizada PunchStatus = "PAUSA_FINALIZADA"
	StatusTurnoFinalizado PunchStatus = "TURNO_FINALIZADO"
)

// Message returns the localized confirmation message for a punch status.
func (s PunchStatus) Message() string {
	switch s {
	case StatusTurnoIniciado:
		return "Turno iniciado com sucesso!"
	case StatusPausaIniciada:
		return "Pausa iniciada."
	case StatusPausaFinalizada:
		return "Pausa finalizada."
	case StatusTurnoFinalizado:
		return "Turno finalizado. Bom descanso!"
	default:
		return "Operação realizada com sucesso!"
	}
}

type Role struct {
	Name string `json:"name"`
}

type Funcionario struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	RoleID    string `json:"role_id"`
	UserID    string `json:"user_id"`
	CreatedAt string `json:"created_at"`
	Roles     Role   `json:"roles"`
	PhotoURL  string `json:"photo_url,omitempty"`

	// Pin may be present on some directory responses. It is a UX hint
	// only; authorization always goes through the server.
	Pin string `json:"pin,omitempty"`
}

type BaterPontoRequest struct {
	EmployeeID string   `json:"employeeId"`
	Pin        string   `json:"pin"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

type BaterPontoResponse struct {
	Status       PunchStatus `json:"status"`
	EmployeeName string      `json:"employeeName"`
}

type VerificarPinRequest struct {
	EmployeeID string `json:"employeeId"`
	Pin        string `json:"pin"`
}

type VerificarPinResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Employee struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"employee"`
}

// RegistroPonto is one time-clock entry. Timestamps stay as wire strings;
// parsing happens at display time so malformed values degrade to a
// sentinel instead of failing the whole fetch.
type RegistroPonto struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	ClockInTime  string  `json:"clock_in_time"`
	ClockOutTime *string `json:"clock_out_time"`
}

type Shift struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	IsDayOff   bool   `json:"is_day_off"`
}

type Escala struct {
	ID            string  `json:"id"`
	WeekStartDate string  `json:"week_start_date"`
	IsPublished   bool    `json:"is_published"`
	Shifts        []Shift `json:"shifts"`
}

type FolhaPagamentoFuncionario struct {
	EmployeeID       string  `json:"employeeId"`
	Name             string  `json:"name"`
	Cargo            string  `json:"cargo"`
	HorasProgramadas float64 `json:"horas_programadas"`
	HorasTrabalhadas float64 `json:"horas_trabajadas"`
	HorasExtras      float64 `json:"horas_extras"`
	PagoBase         float64 `json:"pago_base"`
	PagoExtra        float64 `json:"pago_extra"`
	TotalAPagar      float64 `json:"total_a_pagar"`
}

type FolhaPagamentoResponse struct {
	Periodo string `json:"periodo"`
	Totales struct {
		TotalAPagar           float64 `json:"total_a_pagar"`
		TotalHorasExtras      float64 `json:"total_horas_extras"`
		TotalHorasTrabalhadas float64 `json:"total_horas_trabalhadas"`
	} `json:"totales"`
	Empleados []FolhaPagamentoFuncionario `json:"empleados"`
}

// FindEmpleado filters the payroll response down to one employee.
func (r *FolhaPagamentoResponse) FindEmpleado(employeeID string) *FolhaPagamentoFuncionario {
	for i := range r.Empleados {
		if r.Empleados[i].EmployeeID == employeeID {
			return &r.Empleados[i]
		}
	}
	return nil
}

type AusenciaTipo string

const (
	AusenciaFerias           AusenciaTipo = "Férias"
	AusenciaFolga            AusenciaTipo = "Folga"
	AusenciaFaltaJustificada AusenciaTipo = "Falta Justificada"
	AusenciaAtestado         AusenciaTipo = "Atestado"
)

// AusenciaTipos lists the request types in form order.
var AusenciaTipos = []AusenciaTipo{AusenciaFerias, AusenciaFolga, AusenciaFaltaJustificada, AusenciaAtestado}

type AusenciaStatus string

const (
	AusenciaPendente  AusenciaStatus = "Pendente"
	AusenciaAprovado  AusenciaStatus = "Aprovado"
	AusenciaRejeitado AusenciaStatus = "Rejeitado"
)

type Ausencia struct {
	ID            string         `json:"id"`
	EmployeeID    string         `json:"employee_id"`
	RequestType   AusenciaTipo   `json:"request_type"`
	Status        AusenciaStatus `json:"status"`
	StartDate     string         `json:"start_date"`
	EndDate       string         `json:"end_date"`
	Reason        *string        `json:"reason"`
	AttachmentURL string         `json:"attachment_url,omitempty"`
}

type CriarAusenciaRequest struct {
	EmployeeID         string       `json:"employeeId"`
	RequestType        AusenciaTipo `json:"request_type"`
	StartDate          string       `json:"start_date"`
	EndDate            string       `json:"end_date"`
	Reason             string       `json:"reason,omitempty"`
	Attachment         string       `json:"attachment,omitempty"`
	AttachmentFilename string       `json:"attachment_filename,omitempty"`
}
