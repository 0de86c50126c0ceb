package lnk

// StringData holds the optional strings that follow LinkInfo. A nil field was
// not present in the file; an empty one was present but empty.
type StringData struct {
	Description  *string `json:"description,omitempty"`
	RelativePath *string `json:"relativePath,omitempty"`
	WorkingDir   *string `json:"workingDir,omitempty"`
	Arguments    *string `json:"arguments,omitempty"`
	IconLocation *string `json:"iconLocation,omitempty"`
}

const sectionStringData = "stringData"

// stringData decodes the string fields enabled by flags, in file order. A
// field that cannot be read stops the section since the offsets of the
// remaining fields depend on it.
func (d *decoder) stringData(offset int, flags LinkFlags) (StringData, int) {
	var data StringData
	fields := []struct {
		flag  LinkFlags
		name  string
		value **string
	}{
		{HasName, "description", &data.Description},
		{HasRelativePath, "relativePath", &data.RelativePath},
		{HasWorkingDir, "workingDir", &data.WorkingDir},
		{HasArguments, "arguments", &data.Arguments},
		{HasIconLocation, "iconLocation", &data.IconLocation},
	}
	unicode := flags.Has(IsUnicode)
	for _, field := range fields {
		if !flags.Has(field.flag) {
			continue
		}
		value, next, err := d.c.LengthPrefixed(offset, unicode)
		if err != nil {
			d.fail(sectionStringData, field.name, offset, err)
			return data, d.c.Len()
		}
		*field.value = &value
		offset = next
	}
	return data, offset
}
