package pipeline

import (
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	breath "github.com/rcarcasses/challenge-biosignal"
)

type rateParquetRow struct {
	TSUTCISO  string  `parquet:"name=ts_utc_iso, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Clock     string  `parquet:"name=time, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	TS        float64 `parquet:"name=ts, type=DOUBLE"`
	BPM       float64 `parquet:"name=bpm, type=DOUBLE"`
	IntervalS float64 `parquet:"name=interval_s, type=DOUBLE"`
}

func writeRateParquet(path string, rates []breath.RateSample, loc *time.Location) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	pw, err := writer.NewParquetWriter(fw, new(rateParquetRow), 4)
	if err != nil {
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, r := range rates {
		ts := epochTime(r.Timestamp)
		row := rateParquetRow{
			TSUTCISO:  ts.UTC().Format(time.RFC3339),
			Clock:     ts.In(loc).Format("15:04:05"),
			TS:        r.Timestamp,
			BPM:       r.BPM,
			IntervalS: 60.0 / r.BPM,
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			_ = fw.Close()
			return err
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}
