package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/patch"
	"github.com/noah-isme/school-admin-api/internal/repository"
	"github.com/noah-isme/school-admin-api/internal/search"
	appErrors "github.com/noah-isme/school-admin-api/pkg/errors"
)

// fakeDB is an in-memory store shared by the fake repositories. Its inserts
// enforce the same partial unique indexes as the schema.
type fakeDB struct {
	mu             sync.Mutex
	nextID         int64
	teachers       map[int64]*models.Teacher
	classrooms     map[int64]*models.Classroom
	subjects       map[int64]*models.Subject
	courseSubjects map[int64]*models.CourseSubject
	tutors         map[int64]*models.ClassroomTutor
	assignments    map[int64]*models.TeacherAssignment
	years          map[int64]*models.AcademicYear
	writes         int
	failCascade    error
	failReads      error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		nextID:         100,
		teachers:       map[int64]*models.Teacher{},
		classrooms:     map[int64]*models.Classroom{},
		subjects:       map[int64]*models.Subject{},
		courseSubjects: map[int64]*models.CourseSubject{},
		tutors:         map[int64]*models.ClassroomTutor{},
		assignments:    map[int64]*models.TeacherAssignment{},
		years:          map[int64]*models.AcademicYear{},
	}
}

func (db *fakeDB) id() int64 {
	db.nextID++
	return db.nextID
}

func uniqueViolation(constraint string) error {
	return &pq.Error{Code: "23505", Constraint: constraint}
}

func fold(s string) string { return search.Fold(s) }

func matches(term string, values ...string) bool {
	if strings.TrimSpace(term) == "" {
		return true
	}
	needle := fold(strings.TrimSpace(term))
	for _, v := range values {
		if strings.Contains(fold(v), needle) {
			return true
		}
	}
	return false
}

func pageOf[T any](items []T, req models.PageRequest) []T {
	req = req.Normalize()
	start := req.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + req.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func optionalString(v interface{}) *string {
	if v == nil {
		return nil
	}
	s := v.(string)
	return &s
}

// seed helpers

func (db *fakeDB) addTeacher(t models.Teacher) *models.Teacher {
	db.mu.Lock()
	defer db.mu.Unlock()
	if t.ID == 0 {
		t.ID = db.id()
	}
	db.teachers[t.ID] = &t
	return &t
}

func (db *fakeDB) addClassroom(c models.Classroom) *models.Classroom {
	db.mu.Lock()
	defer db.mu.Unlock()
	if c.ID == 0 {
		c.ID = db.id()
	}
	db.classrooms[c.ID] = &c
	return &c
}

func (db *fakeDB) addSubject(s models.Subject) *models.Subject {
	db.mu.Lock()
	defer db.mu.Unlock()
	if s.ID == 0 {
		s.ID = db.id()
	}
	db.subjects[s.ID] = &s
	return &s
}

func (db *fakeDB) addCourseSubject(cs models.CourseSubject) *models.CourseSubject {
	db.mu.Lock()
	defer db.mu.Unlock()
	if cs.ID == 0 {
		cs.ID = db.id()
	}
	db.courseSubjects[cs.ID] = &cs
	return &cs
}

func (db *fakeDB) addTutor(t models.ClassroomTutor) *models.ClassroomTutor {
	db.mu.Lock()
	defer db.mu.Unlock()
	if t.ID == 0 {
		t.ID = db.id()
	}
	db.tutors[t.ID] = &t
	return &t
}

func (db *fakeDB) addAssignment(a models.TeacherAssignment) *models.TeacherAssignment {
	db.mu.Lock()
	defer db.mu.Unlock()
	if a.ID == 0 {
		a.ID = db.id()
	}
	db.assignments[a.ID] = &a
	return &a
}

// teachers

type fakeTeacherRepo struct{ db *fakeDB }

func (r fakeTeacherRepo) List(ctx context.Context, institutionID int64, filter models.TeacherFilter) ([]models.Teacher, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failReads != nil {
		return nil, 0, r.db.failReads
	}
	var out []models.Teacher
	for _, t := range r.db.teachers {
		if t.InstitutionID != institutionID {
			continue
		}
		if filter.Active != nil && t.Active != *filter.Active {
			continue
		}
		if !matches(filter.Search, t.FirstName+" "+t.LastName, t.IDNumber, t.Email) {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].ID < out[j].ID
	})
	return pageOf(out, filter.PageRequest), len(out), nil
}

func (r fakeTeacherRepo) ListAll(ctx context.Context, institutionID int64, activeOnly bool) ([]models.Teacher, error) {
	active := true
	filter := models.TeacherFilter{PageRequest: models.PageRequest{Limit: models.MaxPageLimit}}
	if activeOnly {
		filter.Active = &active
	}
	items, _, err := r.List(ctx, institutionID, filter)
	return items, err
}

func (r fakeTeacherRepo) FindByID(ctx context.Context, institutionID, id int64) (*models.Teacher, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failReads != nil {
		return nil, r.db.failReads
	}
	t, ok := r.db.teachers[id]
	if !ok || t.InstitutionID != institutionID {
		return nil, sql.ErrNoRows
	}
	row := *t
	return &row, nil
}

func (r fakeTeacherRepo) ExistsActiveByEmail(ctx context.Context, institutionID int64, email string, excludeID int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.teacherTaken(institutionID, func(t *models.Teacher) bool { return strings.EqualFold(t.Email, email) }, excludeID), nil
}

func (r fakeTeacherRepo) ExistsActiveByIDNumber(ctx context.Context, institutionID int64, idNumber string, excludeID int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.teacherTaken(institutionID, func(t *models.Teacher) bool { return t.IDNumber == idNumber }, excludeID), nil
}

func (db *fakeDB) teacherTaken(institutionID int64, match func(*models.Teacher) bool, excludeID int64) bool {
	for _, t := range db.teachers {
		if t.InstitutionID == institutionID && t.Active && t.ID != excludeID && match(t) {
			return true
		}
	}
	return false
}

func (db *fakeDB) checkTeacher(t *models.Teacher) error {
	if !t.Active {
		return nil
	}
	if db.teacherTaken(t.InstitutionID, func(o *models.Teacher) bool { return strings.EqualFold(o.Email, t.Email) }, t.ID) {
		return uniqueViolation(repository.ConstraintTeacherEmail)
	}
	if db.teacherTaken(t.InstitutionID, func(o *models.Teacher) bool { return o.IDNumber == t.IDNumber }, t.ID) {
		return uniqueViolation(repository.ConstraintTeacherIDNumber)
	}
	return nil
}

func (db *fakeDB) checkTutor(t *models.ClassroomTutor) error {
	for _, o := range db.tutors {
		if o.Active && t.Active && o.ID != t.ID && o.ClassroomID == t.ClassroomID && o.AcademicYearID == t.AcademicYearID {
			return uniqueViolation(repository.ConstraintClassroomTutor)
		}
	}
	return nil
}

func (db *fakeDB) checkAssignment(a *models.TeacherAssignment) error {
	for _, o := range db.assignments {
		if o.Active && a.Active && o.ID != a.ID && o.TeacherID == a.TeacherID &&
			o.CourseSubjectID == a.CourseSubjectID && o.AcademicYearID == a.AcademicYearID {
			return uniqueViolation(repository.ConstraintTeacherAssignment)
		}
	}
	return nil
}

func (r fakeTeacherRepo) Create(ctx context.Context, teacher *models.Teacher) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.checkTeacher(teacher); err != nil {
		return err
	}
	teacher.ID = r.db.id()
	teacher.CreatedAt = time.Now()
	teacher.UpdatedAt = teacher.CreatedAt
	row := *teacher
	r.db.teachers[teacher.ID] = &row
	r.db.writes++
	return nil
}

func (r fakeTeacherRepo) CreateWithAssignments(ctx context.Context, teacher *models.Teacher, tutor *models.ClassroomTutor, assignment *models.TeacherAssignment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.checkTeacher(teacher); err != nil {
		return err
	}
	if tutor != nil {
		if err := r.db.checkTutor(tutor); err != nil {
			return err
		}
	}
	teacher.ID = r.db.id()
	t := *teacher
	r.db.teachers[t.ID] = &t
	if tutor != nil {
		tutor.TeacherID = teacher.ID
		tutor.ID = r.db.id()
		c := *tutor
		r.db.tutors[c.ID] = &c
	}
	if assignment != nil {
		assignment.TeacherID = teacher.ID
		assignment.ID = r.db.id()
		a := *assignment
		r.db.assignments[a.ID] = &a
	}
	r.db.writes++
	return nil
}

func (r fakeTeacherRepo) UpdateFields(ctx context.Context, institutionID, id int64, changes patch.Changes) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	current, ok := r.db.teachers[id]
	if !ok || current.InstitutionID != institutionID {
		return sql.ErrNoRows
	}
	next := *current
	for _, ch := range changes {
		switch ch.Column {
		case "id_number":
			next.IDNumber = ch.Value.(string)
		case "first_name":
			next.FirstName = ch.Value.(string)
		case "last_name":
			next.LastName = ch.Value.(string)
		case "email":
			next.Email = ch.Value.(string)
		case "phone":
			next.Phone = optionalString(ch.Value)
		case "secondary_phone":
			next.SecondaryPhone = optionalString(ch.Value)
		case "active":
			next.Active = ch.Value.(bool)
		default:
			return errors.New("unknown column " + ch.Column)
		}
	}
	if err := r.db.checkTeacher(&next); err != nil {
		return err
	}
	next.UpdatedAt = time.Now()
	r.db.teachers[id] = &next
	r.db.writes++
	return nil
}

func (r fakeTeacherRepo) DeactivateCascade(ctx context.Context, institutionID, id int64) (*models.TeacherDeactivation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.teachers[id]
	if !ok || t.InstitutionID != institutionID {
		return nil, sql.ErrNoRows
	}
	if !t.Active {
		return nil, repository.ErrInactive
	}
	if r.db.failCascade != nil {
		return nil, r.db.failCascade
	}
	result := &models.TeacherDeactivation{TeacherID: id}
	for _, tutor := range r.db.tutors {
		if tutor.TeacherID == id && tutor.Active {
			tutor.Active = false
			result.TutorshipsClosed++
		}
	}
	for _, a := range r.db.assignments {
		if a.TeacherID == id && a.Active {
			a.Active = false
			result.AssignmentsClosed++
		}
	}
	t.Active = false
	r.db.writes++
	return result, nil
}

// classrooms

type fakeClassroomRepo struct{ db *fakeDB }

func (r fakeClassroomRepo) List(ctx context.Context, tenant models.TenantContext, filter models.ClassroomFilter) ([]models.Classroom, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Classroom
	for _, c := range r.db.classrooms {
		if c.InstitutionID != tenant.InstitutionID || c.AcademicYearID != tenant.AcademicYearID {
			continue
		}
		if filter.Active != nil && c.Active != *filter.Active {
			continue
		}
		if filter.Schedule != "" && c.Schedule != filter.Schedule {
			continue
		}
		location := ""
		if c.Location != nil {
			location = *c.Location
		}
		if !matches(filter.Search, c.Grade+" "+c.Parallel, location) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return pageOf(out, filter.PageRequest), len(out), nil
}

func (r fakeClassroomRepo) FindByID(ctx context.Context, institutionID, id int64) (*models.Classroom, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failReads != nil {
		return nil, r.db.failReads
	}
	c, ok := r.db.classrooms[id]
	if !ok || c.InstitutionID != institutionID {
		return nil, sql.ErrNoRows
	}
	row := *c
	return &row, nil
}

func (db *fakeDB) classroomTaken(institutionID, yearID int64, grade, parallel string, excludeID int64) bool {
	for _, c := range db.classrooms {
		if c.Active && c.ID != excludeID && c.InstitutionID == institutionID && c.AcademicYearID == yearID &&
			strings.EqualFold(c.Grade, grade) && strings.EqualFold(c.Parallel, parallel) {
			return true
		}
	}
	return false
}

func (r fakeClassroomRepo) ExistsActiveKey(ctx context.Context, tenant models.TenantContext, grade, parallel string, excludeID int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.classroomTaken(tenant.InstitutionID, tenant.AcademicYearID, grade, parallel, excludeID), nil
}

func (r fakeClassroomRepo) Create(ctx context.Context, classroom *models.Classroom) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.classroomTaken(classroom.InstitutionID, classroom.AcademicYearID, classroom.Grade, classroom.Parallel, 0) {
		return uniqueViolation(repository.ConstraintClassroomKey)
	}
	classroom.ID = r.db.id()
	row := *classroom
	r.db.classrooms[row.ID] = &row
	r.db.writes++
	return nil
}

func (r fakeClassroomRepo) UpdateFields(ctx context.Context, institutionID, id int64, changes patch.Changes) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	current, ok := r.db.classrooms[id]
	if !ok || current.InstitutionID != institutionID {
		return sql.ErrNoRows
	}
	next := *current
	for _, ch := range changes {
		switch ch.Column {
		case "grade":
			next.Grade = ch.Value.(string)
		case "parallel":
			next.Parallel = ch.Value.(string)
		case "schedule":
			next.Schedule = models.Schedule(ch.Value.(string))
		case "capacity":
			next.Capacity = ch.Value.(int)
		case "location":
			next.Location = optionalString(ch.Value)
		case "active":
			next.Active = ch.Value.(bool)
		default:
			return errors.New("unknown column " + ch.Column)
		}
	}
	if next.Active && r.db.classroomTaken(next.InstitutionID, next.AcademicYearID, next.Grade, next.Parallel, id) {
		return uniqueViolation(repository.ConstraintClassroomKey)
	}
	r.db.classrooms[id] = &next
	r.db.writes++
	return nil
}

func (r fakeClassroomRepo) Deactivate(ctx context.Context, institutionID, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.classrooms[id]
	if !ok || c.InstitutionID != institutionID || !c.Active {
		return repository.ErrInactive
	}
	c.Active = false
	r.db.writes++
	return nil
}

// subjects

type fakeSubjectRepo struct{ db *fakeDB }

func (r fakeSubjectRepo) List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Subject
	for _, s := range r.db.subjects {
		if filter.Active != nil && s.Active != *filter.Active {
			continue
		}
		if !matches(filter.Search, s.Name, s.Code) {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return pageOf(out, filter.PageRequest), len(out), nil
}

func (r fakeSubjectRepo) FindByID(ctx context.Context, id int64) (*models.Subject, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.subjects[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	row := *s
	return &row, nil
}

func (db *fakeDB) subjectTaken(match func(*models.Subject) bool, excludeID int64) bool {
	for _, s := range db.subjects {
		if s.Active && s.ID != excludeID && match(s) {
			return true
		}
	}
	return false
}

func (r fakeSubjectRepo) ExistsActiveByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.subjectTaken(func(s *models.Subject) bool { return strings.EqualFold(s.Name, name) }, excludeID), nil
}

func (r fakeSubjectRepo) ExistsActiveByCode(ctx context.Context, code string, excludeID int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.db.subjectTaken(func(s *models.Subject) bool { return strings.EqualFold(s.Code, code) }, excludeID), nil
}

func (r fakeSubjectRepo) Create(ctx context.Context, subject *models.Subject) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.subjectTaken(func(s *models.Subject) bool { return strings.EqualFold(s.Code, subject.Code) }, 0) {
		return uniqueViolation(repository.ConstraintSubjectCode)
	}
	subject.ID = r.db.id()
	row := *subject
	r.db.subjects[row.ID] = &row
	r.db.writes++
	return nil
}

func (r fakeSubjectRepo) UpdateFields(ctx context.Context, id int64, changes patch.Changes) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	current, ok := r.db.subjects[id]
	if !ok {
		return sql.ErrNoRows
	}
	next := *current
	for _, ch := range changes {
		switch ch.Column {
		case "name":
			next.Name = ch.Value.(string)
		case "code":
			next.Code = ch.Value.(string)
		case "description":
			next.Description = optionalString(ch.Value)
		case "active":
			next.Active = ch.Value.(bool)
		default:
			return errors.New("unknown column " + ch.Column)
		}
	}
	r.db.subjects[id] = &next
	r.db.writes++
	return nil
}

func (r fakeSubjectRepo) Deactivate(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.subjects[id]
	if !ok || !s.Active {
		return repository.ErrInactive
	}
	s.Active = false
	r.db.writes++
	return nil
}

// course subjects

type fakeCourseSubjectRepo struct{ db *fakeDB }

func (r fakeCourseSubjectRepo) ListByClassroom(ctx context.Context, classroomID int64) ([]models.CourseSubjectDetail, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.CourseSubjectDetail{}
	for _, cs := range r.db.courseSubjects {
		if cs.ClassroomID != classroomID {
			continue
		}
		detail := models.CourseSubjectDetail{CourseSubject: *cs}
		if s, ok := r.db.subjects[cs.SubjectID]; ok {
			detail.SubjectName, detail.SubjectCode = s.Name, s.Code
		}
		out = append(out, detail)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeCourseSubjectRepo) FindByID(ctx context.Context, institutionID, id int64) (*models.CourseSubject, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cs, ok := r.db.courseSubjects[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if c, ok := r.db.classrooms[cs.ClassroomID]; !ok || c.InstitutionID != institutionID {
		return nil, sql.ErrNoRows
	}
	row := *cs
	return &row, nil
}

func (r fakeCourseSubjectRepo) ExistsActive(ctx context.Context, classroomID, subjectID, excludeID int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, cs := range r.db.courseSubjects {
		if cs.Active && cs.ID != excludeID && cs.ClassroomID == classroomID && cs.SubjectID == subjectID {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeCourseSubjectRepo) Create(ctx context.Context, item *models.CourseSubject) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	item.ID = r.db.id()
	row := *item
	r.db.courseSubjects[row.ID] = &row
	r.db.writes++
	return nil
}

func (r fakeCourseSubjectRepo) UpdateFields(ctx context.Context, id int64, changes patch.Changes) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cs, ok := r.db.courseSubjects[id]
	if !ok {
		return sql.ErrNoRows
	}
	for _, ch := range changes {
		switch ch.Column {
		case "weekly_hours":
			cs.WeeklyHours = ch.Value.(int)
		case "active":
			cs.Active = ch.Value.(bool)
		}
	}
	r.db.writes++
	return nil
}

func (r fakeCourseSubjectRepo) Delete(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.courseSubjects[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.db.courseSubjects, id)
	for aid, a := range r.db.assignments {
		if a.CourseSubjectID == id {
			delete(r.db.assignments, aid)
		}
	}
	r.db.writes++
	return nil
}

func (r fakeCourseSubjectRepo) CountActiveAssignments(ctx context.Context, id int64) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	n := 0
	for _, a := range r.db.assignments {
		if a.CourseSubjectID == id && a.Active {
			n++
		}
	}
	return n, nil
}

// classroom tutors

type fakeTutorRepo struct{ db *fakeDB }

func (r fakeTutorRepo) ListByClassroom(ctx context.Context, classroomID, academicYearID int64) ([]models.ClassroomTutorDetail, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.ClassroomTutorDetail{}
	for _, t := range r.db.tutors {
		if t.ClassroomID == classroomID && t.AcademicYearID == academicYearID {
			detail := models.ClassroomTutorDetail{ClassroomTutor: *t}
			if teacher, ok := r.db.teachers[t.TeacherID]; ok {
				detail.TeacherName = teacher.FullName()
			}
			out = append(out, detail)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeTutorRepo) FindByID(ctx context.Context, institutionID, id int64) (*models.ClassroomTutor, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.tutors[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if c, ok := r.db.classrooms[t.ClassroomID]; !ok || c.InstitutionID != institutionID {
		return nil, sql.ErrNoRows
	}
	row := *t
	return &row, nil
}

func (r fakeTutorRepo) HasActive(ctx context.Context, classroomID, academicYearID int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, t := range r.db.tutors {
		if t.Active && t.ClassroomID == classroomID && t.AcademicYearID == academicYearID {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeTutorRepo) Create(ctx context.Context, tutor *models.ClassroomTutor) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.checkTutor(tutor); err != nil {
		return err
	}
	tutor.ID = r.db.id()
	row := *tutor
	r.db.tutors[row.ID] = &row
	r.db.writes++
	return nil
}

func (r fakeTutorRepo) Deactivate(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.tutors[id]
	if !ok || !t.Active {
		return repository.ErrInactive
	}
	t.Active = false
	r.db.writes++
	return nil
}

// teacher assignments

type fakeAssignmentRepo struct{ db *fakeDB }

func (r fakeAssignmentRepo) ListByTeacher(ctx context.Context, teacherID, academicYearID int64) ([]models.TeacherAssignmentDetail, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := []models.TeacherAssignmentDetail{}
	for _, a := range r.db.assignments {
		if a.TeacherID == teacherID && a.AcademicYearID == academicYearID {
			out = append(out, models.TeacherAssignmentDetail{TeacherAssignment: *a})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeAssignmentRepo) FindByID(ctx context.Context, institutionID, id int64) (*models.TeacherAssignment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.assignments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if t, ok := r.db.teachers[a.TeacherID]; !ok || t.InstitutionID != institutionID {
		return nil, sql.ErrNoRows
	}
	row := *a
	return &row, nil
}

func (r fakeAssignmentRepo) HasActive(ctx context.Context, teacherID, courseSubjectID, academicYearID int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	probe := &models.TeacherAssignment{TeacherID: teacherID, CourseSubjectID: courseSubjectID, AcademicYearID: academicYearID, Active: true}
	return r.db.checkAssignment(probe) != nil, nil
}

func (r fakeAssignmentRepo) Create(ctx context.Context, assignment *models.TeacherAssignment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.checkAssignment(assignment); err != nil {
		return err
	}
	assignment.ID = r.db.id()
	row := *assignment
	r.db.assignments[row.ID] = &row
	r.db.writes++
	return nil
}

func (r fakeAssignmentRepo) Deactivate(ctx context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	a, ok := r.db.assignments[id]
	if !ok || !a.Active {
		return repository.ErrInactive
	}
	a.Active = false
	r.db.writes++
	return nil
}

// academic years

type fakeYearRepo struct{ db *fakeDB }

func (r fakeYearRepo) FindByID(ctx context.Context, institutionID, id int64) (*models.AcademicYear, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	y, ok := r.db.years[id]
	if !ok || y.InstitutionID != institutionID {
		return nil, sql.ErrNoRows
	}
	row := *y
	return &row, nil
}

// import reports

type fakeReportStore struct {
	mu      sync.Mutex
	reports map[string]*models.ImportReport
	saveErr error
}

func (s *fakeReportStore) Save(ctx context.Context, report *models.ImportReport, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	if s.reports == nil {
		s.reports = map[string]*models.ImportReport{}
	}
	s.reports[report.BatchID] = report
	return nil
}

func (s *fakeReportStore) Get(ctx context.Context, batchID string) (*models.ImportReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.reports[batchID]; ok {
		return r, nil
	}
	return nil, appErrors.ErrCacheMiss
}
