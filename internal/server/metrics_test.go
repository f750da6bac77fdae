package server

import (
	"sync"
	"testing"
)

func TestMetrics_Counters(t *testing.T) {
	m := &Metrics{}

	m.RecordUpload(100)
	m.RecordUpload(50)
	m.RecordUploadError()
	m.RecordDownload(200)
	m.RecordDownloadError()
	m.RecordDelete()
	m.RecordRequest(200)
	m.RecordRequest(404)
	m.RecordRequest(500)

	snap := m.Snapshot()

	if snap.UploadsTotal != 2 {
		t.Errorf("UploadsTotal = %d, want 2", snap.UploadsTotal)
	}
	if snap.UploadBytesTotal != 150 {
		t.Errorf("UploadBytesTotal = %d, want 150", snap.UploadBytesTotal)
	}
	if snap.UploadErrorsTotal != 1 {
		t.Errorf("UploadErrorsTotal = %d, want 1", snap.UploadErrorsTotal)
	}
	if snap.DownloadsTotal != 1 || snap.DownloadBytesTotal != 200 {
		t.Errorf("downloads = %d/%d bytes, want 1/200", snap.DownloadsTotal, snap.DownloadBytesTotal)
	}
	if snap.DeletesTotal != 1 {
		t.Errorf("DeletesTotal = %d, want 1", snap.DeletesTotal)
	}
	if snap.RequestsTotal != 3 {
		t.Errorf("RequestsTotal = %d, want 3", snap.RequestsTotal)
	}
	if snap.RequestErrors4xx != 1 || snap.RequestErrors5xx != 1 {
		t.Errorf("errors = %d/%d, want 1/1", snap.RequestErrors4xx, snap.RequestErrors5xx)
	}
}

func TestMetrics_ConcurrentAccess(t *testing.T) {
	m := &Metrics{}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordRequest(200)
			}
		}()
	}
	wg.Wait()

	if snap := m.Snapshot(); snap.RequestsTotal != 1000 {
		t.Errorf("RequestsTotal = %d, want 1000", snap.RequestsTotal)
	}
}
