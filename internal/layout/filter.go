package layout

import "strings"

// FilterStudents returns the students whose name, roll number, contact number
// or room identifier contains the term, case-insensitively. An empty term
// returns the input list unchanged. The filter never touches the backend; it
// runs over the currently loaded snapshot.
func FilterStudents(students []StudentInfo, term string) []StudentInfo {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return students
	}

	var matched []StudentInfo
	for _, s := range students {
		if strings.Contains(strings.ToLower(s.StudentName), term) ||
			strings.Contains(strings.ToLower(s.RollNumber), term) ||
			strings.Contains(strings.ToLower(s.ContactNumber), term) ||
			strings.Contains(strings.ToLower(s.RoomNumber), term) {
			matched = append(matched, s)
		}
	}
	return matched
}
