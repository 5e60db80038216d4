package server

import (
	"github.com/notaslab/notas/lib/store"
	"github.com/notaslab/notas/rpc/common"
)

// deletedPair is the payload of a successful ELIMINAR.
type deletedPair struct {
	StudentID string `json:"ID_Estudiante"`
	Subject   string `json:"Materia"`
}

// handleAgregar inserts a new grade record. Both gates (the catalog
// lookup and the roster check) run before the store mutex is taken; only
// the duplicate check and the append happen inside the critical section.
func (d *Dispatcher) handleAgregar(cmd *common.Command) *common.Response {
	// Validate the NRC against the live catalog. A missing subject and a
	// failing catalog service are different outcomes and keep different
	// messages.
	res, err := d.catalog.Lookup(cmd.Subject)
	if err != nil {
		return common.NewErrorResponsef("NRC validation failed: %v", err)
	}
	if !res.Found {
		return common.NewErrorResponsef("NRC not found: %s", cmd.Subject)
	}

	name, known, err := d.roster.ResolveName(cmd.StudentID)
	if err != nil {
		return common.NewErrorResponsef("roster lookup failed: %v", err)
	}
	if !known {
		return common.NewErrorResponsef("student id not found in roster: %s", cmd.StudentID)
	}

	var resp *common.Response
	err = d.grades.Update(func(recs []store.Record) ([]store.Record, error) {
		if store.FindPair(recs, cmd.StudentID, cmd.Subject) >= 0 {
			resp = common.NewErrorResponsef("a grade for ID %s and Materia %s already exists", cmd.StudentID, cmd.Subject)
			return nil, nil
		}

		rec := store.Record{StudentID: cmd.StudentID, Subject: cmd.Subject, Grade: cmd.Grade}
		resp = common.NewOkResponse(common.Grade{
			StudentID: rec.StudentID,
			Name:      name,
			Subject:   rec.Subject,
			Grade:     rec.Grade,
		})
		return append(recs, rec), nil
	})
	if err != nil {
		return common.NewErrorResponsef("store failure: %v", err)
	}

	if resp.Status == common.StatusOk {
		Logger.Infof("added grade: id=%s materia=%s", cmd.StudentID, cmd.Subject)
	}
	return resp
}

// handleBuscar returns every record for a student, enriched with the
// canonical name when the roster resolves it.
func (d *Dispatcher) handleBuscar(cmd *common.Command) *common.Response {
	var matches []store.Record
	err := d.grades.View(func(recs []store.Record) error {
		matches = store.FilterByStudent(recs, cmd.StudentID)
		return nil
	})
	if err != nil {
		return common.NewErrorResponsef("store failure: %v", err)
	}
	if len(matches) == 0 {
		return common.NewNotFoundResponse("no grades for that ID")
	}

	// Enrichment happens outside the store mutex and is best-effort: a
	// roster miss or error returns the records without a name.
	name := ""
	if n, known, err := d.roster.ResolveName(cmd.StudentID); err == nil && known {
		name = n
	}

	out := make([]common.Grade, 0, len(matches))
	for _, r := range matches {
		out = append(out, common.Grade{StudentID: r.StudentID, Name: name, Subject: r.Subject, Grade: r.Grade})
	}
	return common.NewOkResponse(out)
}

// handleActualizar updates the grade of one record. The short form only
// works when the student has exactly one record; with several, the caller
// is told to disambiguate rather than the server guessing.
func (d *Dispatcher) handleActualizar(cmd *common.Command) *common.Response {
	var resp *common.Response
	err := d.grades.Update(func(recs []store.Record) ([]store.Record, error) {
		subject := cmd.Subject
		if !cmd.HasSubject {
			mine := store.FilterByStudent(recs, cmd.StudentID)
			switch len(mine) {
			case 0:
				resp = common.NewNotFoundResponse("no grades for that ID")
				return nil, nil
			case 1:
				subject = mine[0].Subject
			default:
				resp = common.NewErrorResponsef("ID %s has several grades; use ACTUALIZAR|id|materia|nueva", cmd.StudentID)
				return nil, nil
			}
		}

		i := store.FindPair(recs, cmd.StudentID, subject)
		if i < 0 {
			resp = common.NewNotFoundResponse("no grade for that ID and Materia")
			return nil, nil
		}

		recs[i].Grade = cmd.Grade
		resp = common.NewOkResponse(common.Grade{StudentID: cmd.StudentID, Subject: subject, Grade: cmd.Grade})
		return recs, nil
	})
	if err != nil {
		return common.NewErrorResponsef("store failure: %v", err)
	}

	if resp.Status == common.StatusOk {
		Logger.Infof("updated grade: id=%s", cmd.StudentID)
	}
	return resp
}

// handleListar returns every record with best-effort name enrichment.
func (d *Dispatcher) handleListar(_ *common.Command) *common.Response {
	var all []store.Record
	err := d.grades.View(func(recs []store.Record) error {
		all = recs
		return nil
	})
	if err != nil {
		return common.NewErrorResponsef("store failure: %v", err)
	}

	names := map[string]string{}
	if m, err := d.roster.NameMap(); err == nil {
		names = m
	}

	out := make([]common.Grade, 0, len(all))
	for _, r := range all {
		out = append(out, common.Grade{StudentID: r.StudentID, Name: names[r.StudentID], Subject: r.Subject, Grade: r.Grade})
	}
	return common.NewOkResponse(out)
}

// handleEliminar removes one record, with the same disambiguation policy
// as handleActualizar.
func (d *Dispatcher) handleEliminar(cmd *common.Command) *common.Response {
	var resp *common.Response
	err := d.grades.Update(func(recs []store.Record) ([]store.Record, error) {
		subject := cmd.Subject
		if !cmd.HasSubject {
			mine := store.FilterByStudent(recs, cmd.StudentID)
			switch len(mine) {
			case 0:
				resp = common.NewNotFoundResponse("no grades for that ID")
				return nil, nil
			case 1:
				subject = mine[0].Subject
			default:
				resp = common.NewErrorResponsef("ID %s has several grades; use ELIMINAR|id|materia", cmd.StudentID)
				return nil, nil
			}
		}

		i := store.FindPair(recs, cmd.StudentID, subject)
		if i < 0 {
			resp = common.NewNotFoundResponse("no grade for that ID and Materia")
			return nil, nil
		}

		resp = common.NewOkResponse(deletedPair{StudentID: cmd.StudentID, Subject: subject})
		return append(recs[:i], recs[i+1:]...), nil
	})
	if err != nil {
		return common.NewErrorResponsef("store failure: %v", err)
	}

	if resp.Status == common.StatusOk {
		Logger.Infof("deleted grade: id=%s", cmd.StudentID)
	}
	return resp
}
