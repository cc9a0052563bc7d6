// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	goio "io"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// Encoder defines encoders; e.g. gob, json or yaml
type Encoder interface {
	Encode(e interface{}) error
}

// Decoder defines decoders; e.g. gob, json or yaml
type Decoder interface {
	Decode(e interface{}) error
}

// GetEncoder returns a new encoder
func GetEncoder(w goio.Writer, enctype string) Encoder {
	switch enctype {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc
	case "yaml":
		return yaml.NewEncoder(w)
	}
	return gob.NewEncoder(w)
}

// GetDecoder returns a new decoder
func GetDecoder(r goio.Reader, enctype string) Decoder {
	switch enctype {
	case "json":
		return json.NewDecoder(r)
	case "yaml":
		return yaml.NewDecoder(r)
	}
	return gob.NewDecoder(r)
}

// RunDataFile returns the name of the run data file inside dir
func RunDataFile(dir, enctype string) string {
	return filepath.Join(dir, "rundata."+enctype)
}

// Save writes run data into dir (created if needed) and returns the file path
func (o *RunData) Save(dir string, verbose bool) (fnpath string, err error) {

	// buffer and encoder
	var buf bytes.Buffer
	enc := GetEncoder(&buf, o.Encoder)
	err = enc.Encode(o)
	if err != nil {
		return "", chk.Err("cannot encode run data:\n%v", err)
	}
	if c, ok := enc.(goio.Closer); ok {
		if err = c.Close(); err != nil {
			return "", chk.Err("cannot flush run data encoder:\n%v", err)
		}
	}

	// save file
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		return "", chk.Err("cannot create directory for run data (%s):\n%v", dir, err)
	}
	fnpath = RunDataFile(dir, o.Encoder)
	err = save_file(fnpath, &buf, verbose)
	return
}

// ReadRunData reads run data written by Save
func ReadRunData(dir, enctype string) (o *RunData, err error) {
	fil, err := os.Open(RunDataFile(dir, enctype))
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()
	o = new(RunData)
	err = GetDecoder(fil, enctype).Decode(o)
	if err != nil {
		return nil, chk.Err("cannot decode run data in %q:\n%v", dir, err)
	}
	return
}

// auxiliary ///////////////////////////////////////////////////////////////////////////////////////

func save_file(filename string, buf *bytes.Buffer, verbose bool) (err error) {
	fil, err := os.Create(filename)
	if err != nil {
		return
	}
	defer func() {
		if e := fil.Close(); err == nil {
			err = e
		}
	}()
	_, err = fil.Write(buf.Bytes())
	if verbose {
		io.Pfblue2("file <%s> written\n", filename)
	}
	return
}
