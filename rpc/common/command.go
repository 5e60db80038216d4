package common

import (
	"fmt"
	"strings"
)

// Delimiter separates the fields of a request line. There is no escaping:
// a delimiter character inside a field corrupts parsing. This is a known
// limitation of the wire format, kept as-is.
const Delimiter = "|"

// --------------------------------------------------------------------------
// Command Type Definition
// --------------------------------------------------------------------------

// CommandType identifies one of the protocol operations.
type CommandType uint8

const (
	CmdUnknown CommandType = iota

	// Record service operations

	CmdAgregar    // Insert a grade record
	CmdBuscar     // Find records for a student
	CmdActualizar // Update a grade (2- or 3-argument form)
	CmdListar     // List all records
	CmdEliminar   // Delete a record (1- or 2-argument form)

	// Catalog service operations

	CmdBuscarNRC // Look up a subject code
)

// String returns the wire name of a CommandType.
func (t CommandType) String() string {
	switch t {
	case CmdAgregar:
		return "AGREGAR"
	case CmdBuscar:
		return "BUSCAR"
	case CmdActualizar:
		return "ACTUALIZAR"
	case CmdListar:
		return "LISTAR"
	case CmdEliminar:
		return "ELIMINAR"
	case CmdBuscarNRC:
		return "BUSCAR_NRC"
	default:
		return "UNKNOWN"
	}
}

// --------------------------------------------------------------------------
// Command Structure
// --------------------------------------------------------------------------

// Command is the typed form of one request line. Which fields are set
// depends on Type; HasSubject distinguishes the explicit
// (id, materia) forms of ACTUALIZAR and ELIMINAR from the single-argument
// forms that require the student to have exactly one record.
type Command struct {
	Type       CommandType
	StudentID  string
	Subject    string
	Grade      string
	NRC        string
	HasSubject bool
}

// ParseCommand parses one request line into a typed command. It rejects
// empty lines, unknown command names and wrong argument counts, so no
// handler ever sees a malformed request. Parsing never touches the store.
func ParseCommand(line string) (*Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, fmt.Errorf("empty command")
	}

	parts := strings.Split(line, Delimiter)
	name := strings.ToUpper(strings.TrimSpace(parts[0]))
	args := parts[1:]

	switch name {
	case "AGREGAR":
		if len(args) != 3 {
			return nil, fmt.Errorf("invalid format for AGREGAR (use AGREGAR|id|materia|calificacion)")
		}
		return &Command{Type: CmdAgregar, StudentID: args[0], Subject: args[1], Grade: args[2]}, nil

	case "BUSCAR":
		if len(args) != 1 {
			return nil, fmt.Errorf("invalid format for BUSCAR (use BUSCAR|id)")
		}
		return &Command{Type: CmdBuscar, StudentID: args[0]}, nil

	case "ACTUALIZAR":
		switch len(args) {
		case 2:
			return &Command{Type: CmdActualizar, StudentID: args[0], Grade: args[1]}, nil
		case 3:
			return &Command{Type: CmdActualizar, StudentID: args[0], Subject: args[1], Grade: args[2], HasSubject: true}, nil
		default:
			return nil, fmt.Errorf("invalid format for ACTUALIZAR (use ACTUALIZAR|id|nueva or ACTUALIZAR|id|materia|nueva)")
		}

	case "LISTAR":
		if len(args) != 0 {
			return nil, fmt.Errorf("invalid format for LISTAR (takes no arguments)")
		}
		return &Command{Type: CmdListar}, nil

	case "ELIMINAR":
		switch len(args) {
		case 1:
			return &Command{Type: CmdEliminar, StudentID: args[0]}, nil
		case 2:
			return &Command{Type: CmdEliminar, StudentID: args[0], Subject: args[1], HasSubject: true}, nil
		default:
			return nil, fmt.Errorf("invalid format for ELIMINAR (use ELIMINAR|id or ELIMINAR|id|materia)")
		}

	case "BUSCAR_NRC":
		if len(args) != 1 {
			return nil, fmt.Errorf("invalid format (use BUSCAR_NRC|{nrc})")
		}
		return &Command{Type: CmdBuscarNRC, NRC: args[0]}, nil

	default:
		return nil, fmt.Errorf("unknown command: %s", name)
	}
}

// Line renders the command back into its wire form.
func (c *Command) Line() string {
	switch c.Type {
	case CmdAgregar:
		return strings.Join([]string{"AGREGAR", c.StudentID, c.Subject, c.Grade}, Delimiter)
	case CmdBuscar:
		return strings.Join([]string{"BUSCAR", c.StudentID}, Delimiter)
	case CmdActualizar:
		if c.HasSubject {
			return strings.Join([]string{"ACTUALIZAR", c.StudentID, c.Subject, c.Grade}, Delimiter)
		}
		return strings.Join([]string{"ACTUALIZAR", c.StudentID, c.Grade}, Delimiter)
	case CmdListar:
		return "LISTAR"
	case CmdEliminar:
		if c.HasSubject {
			return strings.Join([]string{"ELIMINAR", c.StudentID, c.Subject}, Delimiter)
		}
		return strings.Join([]string{"ELIMINAR", c.StudentID}, Delimiter)
	case CmdBuscarNRC:
		return strings.Join([]string{"BUSCAR_NRC", c.NRC}, Delimiter)
	default:
		return ""
	}
}
