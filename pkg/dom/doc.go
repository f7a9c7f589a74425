// Package dom models the slice of the host page the simulator client touches:
// input fields, output fields, the two forms that own them, and the submit
// events those forms raise. Elements are plain values with internal locking so
// submitters running on separate goroutines can write to them safely.
package dom
